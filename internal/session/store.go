package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Flash levels understood by view payloads.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a one-time notice held in the session until the next view pops it.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is a point-in-time snapshot of one visitor's server-side state.
// UserID is zero while the visitor is anonymous. Cart holds book ids in
// insertion order and may contain duplicates.
type Session struct {
	ID        string
	UserID    int64
	Cart      []int64
	Flashes   []Flash
	CreatedAt time.Time
	ExpiresAt time.Time
}

type sessionState struct {
	userID    int64
	cart      []int64
	flashes   []Flash
	createdAt time.Time
	expiresAt time.Time
}

// Store keeps sessions in memory, keyed by an opaque id. Nothing survives a
// restart: ids issued by a previous process are treated as unknown. Expired
// entries are dropped lazily on lookup; there is no background sweeper.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*sessionState
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*sessionState),
	}
}

// Create registers a fresh anonymous session and returns its snapshot.
func (s *Store) Create() Session {
	now := time.Now()
	st := &sessionState{
		createdAt: now,
		expiresAt: now.Add(s.ttl),
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = st
	s.mu.Unlock()
	return snapshot(id, st)
}

// Get returns a snapshot of the session with the given id.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	st, ok := s.sessions[id]
	if ok && !expired(st) {
		snap := snapshot(id, st)
		s.mu.RUnlock()
		return snap, true
	}
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}

	s.mu.Lock()
	if st, ok := s.sessions[id]; ok && expired(st) {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	return Session{}, false
}

// SetUser binds the session to a user id.
func (s *Store) SetUser(id string, userID int64) bool {
	return s.update(id, func(st *sessionState) {
		st.userID = userID
	})
}

// ClearUser detaches the user from the session. The cart is kept.
func (s *Store) ClearUser(id string) bool {
	return s.update(id, func(st *sessionState) {
		st.userID = 0
	})
}

// AddCartItem appends a book id to the session cart. The id is not checked
// against the catalog; stale ids degrade at read time.
func (s *Store) AddCartItem(id string, bookID int64) bool {
	return s.update(id, func(st *sessionState) {
		st.cart = append(st.cart, bookID)
	})
}

// RemoveCartItem removes every occurrence of the book id from the cart,
// keeping the relative order of the rest. Absent ids are a no-op.
func (s *Store) RemoveCartItem(id string, bookID int64) bool {
	return s.update(id, func(st *sessionState) {
		kept := st.cart[:0]
		for _, b := range st.cart {
			if b != bookID {
				kept = append(kept, b)
			}
		}
		st.cart = kept
	})
}

// ClearCart empties the session cart.
func (s *Store) ClearCart(id string) bool {
	return s.update(id, func(st *sessionState) {
		st.cart = nil
	})
}

// CartItems returns a copy of the stored cart ids in insertion order.
func (s *Store) CartItems(id string) ([]int64, bool) {
	snap, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	return snap.Cart, true
}

// PushFlash queues a one-time notice on the session.
func (s *Store) PushFlash(id, level, message string) bool {
	return s.update(id, func(st *sessionState) {
		st.flashes = append(st.flashes, Flash{Level: level, Message: message})
	})
}

// PopFlashes returns the queued notices and clears them. Each notice is
// delivered at most once.
func (s *Store) PopFlashes(id string) []Flash {
	var out []Flash
	s.update(id, func(st *sessionState) {
		out = st.flashes
		st.flashes = nil
	})
	return out
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// update runs fn on the session state under the write lock. Expired sessions
// are dropped and fn is not run.
func (s *Store) update(id string, fn func(*sessionState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return false
	}
	if expired(st) {
		delete(s.sessions, id)
		return false
	}
	fn(st)
	return true
}

func expired(st *sessionState) bool {
	return time.Now().After(st.expiresAt)
}

func snapshot(id string, st *sessionState) Session {
	snap := Session{
		ID:        id,
		UserID:    st.userID,
		CreatedAt: st.createdAt,
		ExpiresAt: st.expiresAt,
	}
	if len(st.cart) > 0 {
		snap.Cart = append([]int64(nil), st.cart...)
	}
	if len(st.flashes) > 0 {
		snap.Flashes = append([]Flash(nil), st.flashes...)
	}
	return snap
}
