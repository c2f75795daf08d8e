package cart

import "sync"

// Store keeps one cart per authenticated user for the lifetime of the
// process, the in-memory counterpart of server-side session storage.
type Store struct {
	mu    sync.Mutex
	carts map[uint]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[uint]*Cart)}
}

// Get returns the user's cart, creating an empty one on first use.
func (s *Store) Get(userID uint) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{}
		s.carts[userID] = c
	}
	return c
}

// Drop discards the user's cart entirely, e.g. on logout.
func (s *Store) Drop(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
