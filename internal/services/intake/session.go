package intake

import "sync"

// Step is the conversation position of one user session.
type Step string

const (
	// StepNone marks a session that has not started the flow yet.
	StepNone Step = ""
	// StepAwaitingPhone waits for the user's own contact share.
	StepAwaitingPhone Step = "awaiting_phone"
	// StepAwaitingTeam waits for a team selection.
	StepAwaitingTeam Step = "awaiting_team"
	// StepAwaitingEmail waits for a syntactically valid email.
	StepAwaitingEmail Step = "awaiting_email"
	// StepDone marks a completed intake; the next message restarts.
	StepDone Step = "done"
)

// Session accumulates partial intake answers for one user. Partial state
// lives only here; nothing is persisted before the email step completes.
type Session struct {
	mu sync.Mutex

	Step  Step
	Phone string
	Team  string
}

// Sessions maps Telegram user ids to their conversation sessions.
//
// The per-session mutex serializes event handling for one user, so two
// completion sequences for the same account can never interleave while
// unrelated users proceed concurrently.
type Sessions struct {
	mu      sync.Mutex
	entries map[int64]*Session
}

// NewSessions returns an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{entries: make(map[int64]*Session)}
}

// get returns the session for userID, creating it at StepNone if absent.
func (s *Sessions) get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[int64]*Session)
	}
	session, ok := s.entries[userID]
	if !ok {
		session = &Session{}
		s.entries[userID] = session
	}
	return session
}

// Len reports how many sessions are tracked.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// reset moves a session back to the start of the flow, dropping answers.
func (session *Session) reset(step Step) {
	session.Step = step
	session.Phone = ""
	session.Team = ""
}
