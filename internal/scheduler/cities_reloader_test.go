package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/davmoraru/wayfind/internal/cities"
	"github.com/davmoraru/wayfind/internal/logger"
)

type stubSource struct {
	names []string
	err   error
	calls atomic.Int32
}

func (s *stubSource) Cities(context.Context) ([]string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.names, nil
}

func TestCitiesReloader_Reload(t *testing.T) {
	src := &stubSource{names: []string{"Iasi", "Cluj-Napoca"}}
	idx := cities.NewIndex()
	cr := NewCitiesReloader(src, idx, logger.New("error", false), time.Hour, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	if idx.Count() != 2 {
		t.Errorf("index count = %d, want 2", idx.Count())
	}
}

func TestCitiesReloader_ReloadError(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	idx := cities.NewIndex()
	cr := NewCitiesReloader(src, idx, logger.New("error", false), time.Hour, nil)

	if err := cr.Reload(context.Background()); err == nil {
		t.Fatal("Reload() must propagate source errors")
	}
	if !idx.LastReload().IsZero() {
		t.Error("a failed reload must not stamp the index")
	}
}

func TestCitiesReloader_ManualTrigger(t *testing.T) {
	src := &stubSource{names: []string{"Iasi"}}
	idx := cities.NewIndex()
	trigger := make(chan struct{}, 1)
	cr := NewCitiesReloader(src, idx, logger.New("error", false), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := cr.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer cr.Stop()

	trigger <- struct{}{}

	deadline := time.Now().Add(time.Second)
	for src.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("manual trigger never caused a reload")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
