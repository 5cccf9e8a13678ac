/*
This is an example application that uses the engine package to view an
asset file and hot-reload it on change.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/vetrina/engine"
	"github.com/spaghettifunk/vetrina/engine/core"
	"github.com/spaghettifunk/vetrina/testbed"
)

func main() {
	configPath := "vetrina.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := engine.LoadViewerConfig(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			panic(err)
		}
		core.LogWarn("config '%s' not found, using defaults", configPath)
		config = engine.DefaultViewerConfig()
	}

	viewer, err := engine.New(config, testbed.DemoCodec{})
	if err != nil {
		panic(err)
	}

	if err := viewer.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// request a quit on the next frame; the run loop owns the teardown
	go func() {
		<-sigCh
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
	}()

	// run viewer
	if err := viewer.Run(); err != nil {
		panic(err)
	}
}
