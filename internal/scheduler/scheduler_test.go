package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lp452254117/alpha-predator/pkg/logger"
)

type countingJob struct {
	name     string
	schedule string
	err      error
	runs     atomic.Int32
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestAddJob_RejectsDuplicates(t *testing.T) {
	s := New(logger.Nop(), time.UTC)

	job := &countingJob{name: "dup", schedule: "0 0 9 * * 1-5"}
	if err := s.AddJob(job); err != nil {
		t.Fatalf("first AddJob() error = %v", err)
	}
	if err := s.AddJob(job); err == nil {
		t.Error("second AddJob() with same name should fail")
	}
}

func TestAddJob_RejectsInvalidSchedule(t *testing.T) {
	s := New(logger.Nop(), time.UTC)

	job := &countingJob{name: "bad", schedule: "not a schedule"}
	if err := s.AddJob(job); err == nil {
		t.Error("AddJob() with invalid schedule should fail")
	}
}

func TestRunJob_NotFound(t *testing.T) {
	s := New(logger.Nop(), time.UTC)

	if err := s.RunJob("missing"); err == nil {
		t.Error("RunJob() for unregistered job should fail")
	}
}

func TestRunJob_FailureIsRecordedNotRetried(t *testing.T) {
	s := New(logger.Nop(), time.UTC)

	job := &countingJob{name: "flaky", schedule: "0 0 9 * * 1-5", err: errors.New("boom")}
	if err := s.AddJob(job); err != nil {
		t.Fatal(err)
	}

	if err := s.RunJob("flaky"); err != nil {
		t.Fatal(err)
	}

	// RunJob is asynchronous
	deadline := time.Now().Add(2 * time.Second)
	for {
		history, err := s.GetJobHistory("flaky")
		if err != nil {
			t.Fatal(err)
		}
		if len(history.Results) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("job result never recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if got := job.runs.Load(); got != 1 {
		t.Errorf("runs = %d, want exactly 1 (no retry)", got)
	}

	history, _ := s.GetJobHistory("flaky")
	result := history.Results[0]
	if result.Success {
		t.Error("result should be marked failed")
	}
	if result.Error != "boom" {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestJobHistory_Caps(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "j", Success: i%2 == 0})
	}

	if len(h.Results) != 100 {
		t.Errorf("history length = %d, want capped at 100", len(h.Results))
	}
}

func TestJobHistory_SuccessRate(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})
	h.AddResult(JobResult{Success: false})

	if got := h.GetSuccessRate(); got != 0.5 {
		t.Errorf("GetSuccessRate() = %v, want 0.5", got)
	}
}
