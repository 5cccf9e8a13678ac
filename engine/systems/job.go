package systems

import (
	"context"
	"fmt"
	"sync"

	"github.com/spaghettifunk/vetrina/engine/core"
	"github.com/spaghettifunk/vetrina/engine/scene"
)

/**
 * @brief A unit of decode work. OnStart runs on a worker goroutine; exactly
 * one of OnComplete/OnFailure follows on the same goroutine.
 */
type DecodeTask struct {
	OnStart    func(ctx context.Context) (*scene.Scene, error)
	OnComplete func(result *scene.Scene)
	OnFailure  func(err error)
}

type decodeJob struct {
	ctx  context.Context
	task DecodeTask
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan decodeJob
	wg         sync.WaitGroup

	// closed guards the queue so a late Submit cannot send on a closed
	// channel. Submits hold the read side; Shutdown takes the write side.
	mu     sync.RWMutex
	closed bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan decodeJob, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.task.OnStart(job.ctx)
				if err != nil {
					core.LogError(err.Error())
					if job.task.OnFailure != nil {
						job.task.OnFailure(err)
					}
				} else if job.task.OnComplete != nil {
					job.task.OnComplete(result)
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Blocks until in-flight jobs finish;
 * cancel their context first if they can stall on the network.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution. Returns false
 * if the system has already been shut down.
 */
func (js *JobSystem) Submit(ctx context.Context, task DecodeTask) bool {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return false
	}
	js.jobQueue <- decodeJob{ctx: ctx, task: task}
	return true
}
