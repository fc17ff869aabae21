package services

import "sync"

// Conversation-level states. They describe the chat flow only and are not
// persisted anywhere.
const (
	SessionIdle              = "idle"
	SessionMenuShown         = "menu_shown"
	SessionItemSelected      = "item_selected"
	SessionPaymentRequested  = "payment_requested"
	SessionPaymentConfirmed  = "payment_confirmed"
	SessionLocationRequested = "location_requested"
	SessionLocationReceived  = "location_received"
)

// Session keeps per-user conversation context between updates: the last
// recorded order and shared delivery coordinates.
type Session struct {
	State       string
	LastOrderID int64
	Lat         float64
	Lon         float64
	HasLocation bool
}

// ValidSessionTransition reports whether moving between the two states
// follows the expected conversation flow. The menu can be reopened from any
// state; payment confirmation and a shared location are only expected after
// their respective requests.
func ValidSessionTransition(from, to string) bool {
	switch to {
	case SessionMenuShown:
		return true
	case SessionItemSelected:
		return from == SessionMenuShown || from == SessionItemSelected
	case SessionPaymentRequested:
		return from == SessionItemSelected || from == SessionPaymentRequested
	case SessionPaymentConfirmed:
		return from == SessionPaymentRequested
	case SessionLocationRequested:
		return from == SessionItemSelected || from == SessionPaymentConfirmed ||
			from == SessionLocationRequested
	case SessionLocationReceived:
		return from == SessionLocationRequested
	}
	return false
}

// SessionStore holds sessions keyed by user id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Get returns a copy of the user's session, or an idle one if none exists.
func (s *SessionStore) Get(userID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return *sess
	}
	return Session{State: SessionIdle}
}

// Advance moves the user's session to the given state and applies mutate
// under the lock. Inbound events arrive independently and must not be
// dropped, so the move is applied even when it is not a defined transition;
// the return value only reports whether the flow was followed.
func (s *SessionStore) Advance(userID int64, to string, mutate func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{State: SessionIdle}
		s.sessions[userID] = sess
	}
	followed := ValidSessionTransition(sess.State, to)
	sess.State = to
	if mutate != nil {
		mutate(sess)
	}
	return followed
}
