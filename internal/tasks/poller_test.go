package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	taskrepo "foodnet/internal/repository/task"
)

type stubTaskRepo struct {
	due        []taskrepo.Task
	dueErr     error
	enqueued   []taskrepo.Task
	doneIDs    []string
	failedIDs  []string
	failedMsgs []string
}

func (s *stubTaskRepo) Enqueue(_ context.Context, kind string, payload []byte, runAt time.Time) error {
	s.enqueued = append(s.enqueued, taskrepo.Task{Kind: kind, Payload: payload, RunAt: runAt})
	return nil
}

func (s *stubTaskRepo) Due(_ context.Context, _ int) ([]taskrepo.Task, error) {
	return s.due, s.dueErr
}

func (s *stubTaskRepo) MarkDone(_ context.Context, id string) error {
	s.doneIDs = append(s.doneIDs, id)
	return nil
}

func (s *stubTaskRepo) MarkFailed(_ context.Context, id string, reason string) error {
	s.failedIDs = append(s.failedIDs, id)
	s.failedMsgs = append(s.failedMsgs, reason)
	return nil
}

func TestDispatcherEnqueuesJSON(t *testing.T) {
	repo := &stubTaskRepo{}
	d := NewOutboxDispatcher(repo)
	err := d.Dispatch(context.Background(), KindRecalculateFee, RecalculateFeePayload{RegionID: "r1", JobID: "j1"}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.enqueued) != 1 {
		t.Fatalf("expected 1 task, got %d", len(repo.enqueued))
	}
	var p RecalculateFeePayload
	if err := json.Unmarshal(repo.enqueued[0].Payload, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if p.JobID != "j1" || p.RegionID != "r1" {
		t.Fatalf("unexpected payload %+v", p)
	}
	if !repo.enqueued[0].RunAt.After(time.Now()) {
		t.Fatalf("expected delayed run time")
	}
}

func TestPollerDrainInvokesHandler(t *testing.T) {
	repo := &stubTaskRepo{due: []taskrepo.Task{{ID: "t1", Kind: "demo", Payload: []byte(`{}`)}}}
	p := NewPoller(repo, nil)
	var called bool
	p.Register("demo", func(_ context.Context, _ []byte) error {
		called = true
		return nil
	})
	p.drain(context.Background())
	if !called {
		t.Fatalf("handler not called")
	}
	if len(repo.doneIDs) != 1 || repo.doneIDs[0] != "t1" {
		t.Fatalf("expected t1 marked done, got %v", repo.doneIDs)
	}
}

func TestPollerDrainFailsTask(t *testing.T) {
	repo := &stubTaskRepo{due: []taskrepo.Task{{ID: "t1", Kind: "demo", Payload: []byte(`{}`)}}}
	p := NewPoller(repo, nil)
	p.Register("demo", func(_ context.Context, _ []byte) error {
		return errors.New("boom")
	})
	p.drain(context.Background())
	if len(repo.failedIDs) != 1 {
		t.Fatalf("expected failure, got %v", repo.failedIDs)
	}
	if repo.failedMsgs[0] != "boom" {
		t.Fatalf("unexpected reason %q", repo.failedMsgs[0])
	}
}

func TestPollerDrainUnknownKind(t *testing.T) {
	repo := &stubTaskRepo{due: []taskrepo.Task{{ID: "t1", Kind: "mystery", Payload: nil}}}
	p := NewPoller(repo, nil)
	p.drain(context.Background())
	if len(repo.failedIDs) != 1 {
		t.Fatalf("expected unknown kind to fail, got %v", repo.failedIDs)
	}
}
