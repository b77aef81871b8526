package params

import (
	"sync"
	"sync/atomic"
)

// Store holds the shared parameters. Writers swap a whole record, so a frame
// reading with Get never observes a partially applied Update.
type Store struct {
	cur       atomic.Pointer[Params]
	mu        sync.Mutex
	listeners []func(Params)
}

func NewStore(initial Params) *Store {
	s := &Store{}
	s.cur.Store(&initial)
	return s
}

func (s *Store) Get() Params { return *s.cur.Load() }

// Speed is Get().Speed, shaped for clock.Start.
func (s *Store) Speed() float64 { return s.cur.Load().Speed }

// Set merges u into the current record and returns the result.
func (s *Store) Set(u Update) Params {
	s.mu.Lock()
	next := u.Apply(*s.cur.Load())
	s.cur.Store(&next)
	listeners := s.listeners
	s.mu.Unlock()

	if !u.Empty() {
		for _, fn := range listeners {
			fn(next)
		}
	}
	return next
}

func (s *Store) Replace(p Params) Params {
	return s.Set(Update{Speed: &p.Speed, Omega: &p.Omega, Couple: &p.Couple})
}

func (s *Store) Reset() Params { return s.Replace(Default()) }

// OnChange registers fn to run after every non-empty Set.
func (s *Store) OnChange(fn func(Params)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}
