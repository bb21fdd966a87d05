// Package stores holds the client-side state of each domain: the collections
// fetched from the API together with a loading flag and the last error.
//
// Every action follows the same sequence: mark loading and clear the error,
// call the API, then either apply the result or record a human-readable
// message. The error is also returned to the caller. Stores are safe for
// concurrent use; Snapshot returns copies and Subscribe reports changes.
package stores

import (
	"sync"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
)

// Status is shared by all store states. Error is empty when the last action
// succeeded.
type Status struct {
	Loading bool
	Error   string
}

type store[S any] struct {
	mu       sync.RWMutex
	state    S
	inflight int
	err      string
	clone    func(S) S

	subsMu sync.Mutex
	nextID int
	subs   map[int]func()
}

func newStore[S any](clone func(S) S) *store[S] {
	return &store[S]{clone: clone, subs: make(map[int]func())}
}

// snapshot returns a copy of the state and the current status.
func (s *store[S]) snapshot() (S, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clone(s.state), Status{Loading: s.inflight > 0, Error: s.err}
}

// Subscribe registers fn to be called after every state change.
func (s *store[S]) Subscribe(fn func()) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *store[S]) notify() {
	s.subsMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *store[S]) update(fn func(*S)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *store[S]) begin() {
	s.mu.Lock()
	s.inflight++
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

// end applies the outcome of an action. apply runs only on success.
func (s *store[S]) end(err error, apply func(*S)) {
	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.err = client.Message(err)
	} else if apply != nil {
		apply(&s.state)
	}
	s.mu.Unlock()
	s.notify()
}

// fail records err without running an API call.
func (s *store[S]) fail(err error) error {
	s.mu.Lock()
	s.err = client.Message(err)
	s.mu.Unlock()
	s.notify()
	return err
}

// ClearError resets the error message.
func (s *store[S]) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

// act runs one store action around call.
func act[S, T any](s *store[S], call func() (T, error), apply func(*S, T)) (T, error) {
	s.begin()
	v, err := call()
	s.end(err, func(st *S) {
		if apply != nil {
			apply(st, v)
		}
	})
	return v, err
}

// act0 is act for calls without a result.
func act0[S any](s *store[S], call func() error, apply func(*S)) error {
	_, err := act(s, func() (struct{}, error) { return struct{}{}, call() }, func(st *S, _ struct{}) {
		if apply != nil {
			apply(st)
		}
	})
	return err
}

func ptrClone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func replaceByID[T any](items []T, id func(T) string, v T) []T {
	key := id(v)
	for i := range items {
		if id(items[i]) == key {
			items[i] = v
			return items
		}
	}
	return append(items, v)
}

func removeByID[T any](items []T, id func(T) string, key string) []T {
	out := items[:0]
	for _, it := range items {
		if id(it) != key {
			out = append(out, it)
		}
	}
	return out
}
