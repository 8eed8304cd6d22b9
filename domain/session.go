package domain

import "time"

// SessionState is the authentication state of the running UI.
type SessionState int

const (
	SessionAnonymous SessionState = iota
	SessionAuthenticated
)

func (s SessionState) String() string {
	if s == SessionAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session ties UI actions to the logged-in account for the lifetime of the task view.
// There is no logout and no expiry.
type Session struct {
	ID             string    `json:"id"`
	AccountID      int64     `json:"account_id"`
	Username       string    `json:"username"`
	SortByDeadline bool      `json:"sort_by_deadline"`
	StartedAt      time.Time `json:"started_at"`
}

func (s *Session) State() SessionState {
	if s == nil || s.AccountID <= 0 {
		return SessionAnonymous
	}
	return SessionAuthenticated
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == SessionAuthenticated
}

// ToggleSort flips the deadline ordering flag and returns the new value.
func (s *Session) ToggleSort() bool {
	if s == nil {
		return false
	}
	s.SortByDeadline = !s.SortByDeadline
	return s.SortByDeadline
}
