package systems

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetrina/engine/scene"
)

func TestJobSystemValidation(t *testing.T) {
	_, err := NewJobSystem(0, 4)
	assert.ErrorIs(t, err, ErrNoWorkers)

	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobSystemRoutesCompletion(t *testing.T) {
	js, err := NewJobSystem(1, 4)
	require.NoError(t, err)
	defer js.Shutdown()

	decoded := buildTestScene([]string{"quad"})
	done := make(chan *scene.Scene, 1)

	ok := js.Submit(context.Background(), DecodeTask{
		OnStart: func(ctx context.Context) (*scene.Scene, error) {
			return decoded, nil
		},
		OnComplete: func(result *scene.Scene) {
			done <- result
		},
		OnFailure: func(err error) {
			t.Error("OnFailure must not run on success")
		},
	})
	require.True(t, ok)

	select {
	case result := <-done:
		assert.Same(t, decoded, result)
	case <-time.After(2 * time.Second):
		t.Fatal("job never completed")
	}
}

func TestJobSystemRoutesFailure(t *testing.T) {
	js, err := NewJobSystem(1, 4)
	require.NoError(t, err)
	defer js.Shutdown()

	boom := errors.New("boom")
	done := make(chan error, 1)

	js.Submit(context.Background(), DecodeTask{
		OnStart: func(ctx context.Context) (*scene.Scene, error) {
			return nil, boom
		},
		OnComplete: func(result *scene.Scene) {
			t.Error("OnComplete must not run on failure")
		},
		OnFailure: func(err error) {
			done <- err
		},
	})

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("job never failed")
	}
}

func TestJobSystemRejectsSubmitAfterShutdown(t *testing.T) {
	js, err := NewJobSystem(1, 4)
	require.NoError(t, err)
	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown(), "second shutdown is a no-op")

	ok := js.Submit(context.Background(), DecodeTask{
		OnStart: func(ctx context.Context) (*scene.Scene, error) {
			return nil, nil
		},
	})
	assert.False(t, ok)
}
