package analyzer

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrBusy is returned when a run is requested while one is loading.
	ErrBusy       = errors.New("a run is already in progress")
	ErrEmptyQuery = errors.New("empty subreddit name")
)

// Service ties the pipeline to the UI state. Runs are started in the
// background with a context that outlives the triggering request.
type Service struct {
	pipeline *Pipeline
	store    *Store
	ctx      context.Context
	wg       sync.WaitGroup
}

func NewService(ctx context.Context, pipeline *Pipeline, store *Store) *Service {
	return &Service{pipeline: pipeline, store: store, ctx: ctx}
}

func (s *Service) State() State {
	return s.store.Snapshot()
}

// Start launches a run for query. It returns ErrBusy while a run is loading
// and ErrEmptyQuery for a blank name.
func (s *Service) Start(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}
	if !s.store.Begin(query) {
		return ErrBusy
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		result, err := s.pipeline.Run(s.ctx, query)
		s.store.Finish(result, err)
	}()
	return nil
}

// Wait blocks until the background run, if any, has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
