package analyzer

import (
	"sync"

	"github.com/qepting91/subreddit-analyzer/internal/domain"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// State is what the page renders. Result is the last successful result; it
// is kept across failed runs but only displayed in StatusSuccess.
type State struct {
	Status Status
	Query  string
	Error  string
	Result *domain.Result
}

// Rows returns the rows to display, if any.
func (s State) Rows() []domain.Row {
	if s.Status != StatusSuccess {
		return nil
	}
	return s.Result.Rows()
}

// Store holds the single UI state. Runs replace the result wholesale.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Status: StatusIdle}}
}

// Begin marks a run as started. It returns false while another run is loading.
func (s *Store) Begin(query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status == StatusLoading {
		return false
	}
	s.state.Status = StatusLoading
	s.state.Query = query
	s.state.Error = ""
	return true
}

// Finish records the outcome of the run started by Begin.
func (s *Store) Finish(result *domain.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.Status = StatusFailed
		s.state.Error = Message(err)
		return
	}
	s.state.Status = StatusSuccess
	s.state.Error = ""
	s.state.Result = result
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
