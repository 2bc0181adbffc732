package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// stateStore одноразовые значения state для защиты OAuth callback от подделки
type stateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

func newStateStore(ttl time.Duration) *stateStore {
	return &stateStore{
		states: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// issue выдает новое значение state
func (s *stateStore) issue() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for state, expires := range s.states {
		if now.After(expires) {
			delete(s.states, state)
		}
	}

	state := uuid.NewString()
	s.states[state] = now.Add(s.ttl)
	return state
}

// consume проверяет state и удаляет его; повторное использование отклоняется
func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return !s.now().After(expires)
}
