package job

import (
	"errors"
	"sync/atomic"
	"testing"
)

type countingJob struct {
	name     string
	started  atomic.Int32
	stopped  atomic.Int32
	startErr error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Start() error {
	j.started.Add(1)
	return j.startErr
}

func (j *countingJob) Stop() error {
	j.stopped.Add(1)
	return nil
}

func TestManagerStartStopAll(t *testing.T) {
	m := NewManager()
	a := &countingJob{name: "a"}
	b := &countingJob{name: "b"}
	m.Register(a)
	m.Register(b)

	m.StartAll()
	if a.started.Load() != 1 || b.started.Load() != 1 {
		t.Error("StartAll should start every registered job once")
	}

	m.StopAll()
	if a.stopped.Load() != 1 || b.stopped.Load() != 1 {
		t.Error("StopAll should stop every registered job once")
	}
}

func TestManagerStartErrorDoesNotAbort(t *testing.T) {
	m := NewManager()
	bad := &countingJob{name: "bad", startErr: errors.New("boom")}
	good := &countingJob{name: "good"}
	m.Register(bad)
	m.Register(good)

	m.StartAll()
	if good.started.Load() != 1 {
		t.Error("a failing job must not prevent later jobs from starting")
	}
}
