package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSweeperSweepsImmediatelyAndOnTicks(t *testing.T) {
	var sweeps int64
	s := Sweeper{
		Reclaim: func() (int64, error) {
			atomic.AddInt64(&sweeps, 1)
			return 0, nil
		},
		Interval: 10 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt64(&sweeps) < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d sweep(s) before deadline", atomic.LoadInt64(&sweeps))
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSweeperSurvivesReclaimErrors(t *testing.T) {
	var sweeps int64
	s := Sweeper{
		Reclaim: func() (int64, error) {
			atomic.AddInt64(&sweeps, 1)
			return 0, errors.New("db gone")
		},
		Interval: 10 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt64(&sweeps) < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper stopped after a reclaim error")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}
