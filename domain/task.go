package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar format deadlines are entered, stored and sorted in.
const DateLayout = "2006-01-02"

// Task represents an account-owned to-do item.
type Task struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Deadline    time.Time `json:"deadline"`
}

// DeadlineString renders the deadline the way it is stored.
func (t *Task) DeadlineString() string {
	if t == nil || t.Deadline.IsZero() {
		return ""
	}
	return t.Deadline.Format(DateLayout)
}

// ParseDeadline parses a YYYY-MM-DD date. Surrounding whitespace is ignored.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrTaskFieldsRequired
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, WrapError(ErrCodeInvalid, ErrInvalidDeadline.Message, err)
	}
	return parsed, nil
}
