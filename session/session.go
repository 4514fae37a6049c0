// Package session holds per-customer conversation state: the current state
// machine position, the cart, and the in-flight customization draft. All of
// it is ephemeral; orders are the only thing that survives a restart.
package session

import "sync"

type State int

const (
	StateMenu State = iota
	StateGranola
	StateDrizzle
	StateRequest
)

// LineItem is one finalized cart entry. Price is frozen at add time; later
// catalog changes never reach existing carts or orders.
type LineItem struct {
	Name  string
	Price float64
	Note  string
}

// Draft is an in-progress customization. It exists only between the menu
// pick and finalization back into a LineItem.
type Draft struct {
	BaseName  string
	BasePrice float64
	Granola   string
	Drizzle   string
	Note      string
}

// Session is one customer's conversation. The embedded mutex serializes all
// event handling for that customer: events are processed one at a time, in
// arrival order, so a double-tapped checkout cannot mint two orders.
type Session struct {
	mu    sync.Mutex
	State State
	Cart  []LineItem
	Draft *Draft
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// AddItem appends a finalized line item to the cart.
func (s *Session) AddItem(item LineItem) {
	s.Cart = append(s.Cart, item)
}

// RemoveItem pops the cart entry at index i. Out-of-range indexes leave the
// cart unchanged.
func (s *Session) RemoveItem(i int) (LineItem, bool) {
	if i < 0 || i >= len(s.Cart) {
		return LineItem{}, false
	}
	removed := s.Cart[i]
	s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
	return removed, true
}

// Total sums the cart's frozen prices.
func (s *Session) Total() float64 {
	var total float64
	for _, it := range s.Cart {
		total += it.Price
	}
	return total
}

// ClearCart empties the cart after a successful checkout. The session itself
// stays so the customer can order again.
func (s *Session) ClearCart() {
	s.Cart = nil
	s.Draft = nil
}

// Store maps customer ids to their sessions, created lazily.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the customer's session, creating one if needed.
func (st *Store) Get(customerID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[customerID]
	if !ok {
		sess = &Session{State: StateMenu}
		st.sessions[customerID] = sess
	}
	return sess
}

// Delete ends a conversation outright.
func (st *Store) Delete(customerID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, customerID)
}

// Peek returns the session without creating one.
func (st *Store) Peek(customerID int64) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[customerID]
	return sess, ok
}
