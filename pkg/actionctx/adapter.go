package actionctx

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/taskdesk/domain"
	appLogger "github.com/fastygo/taskdesk/pkg/logger"
)

// Adapter turns a UI action into a stdlib context carrying the session and
// a fresh action ID for log correlation.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs an Adapter. A zero timeout leaves contexts without a deadline.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout < 0 {
		timeout = 0
	}
	return &Adapter{timeout: timeout}
}

// Attach builds the context for one action. The session may be nil before login.
func (a *Adapter) Attach(sess *domain.Session) (context.Context, context.CancelFunc) {
	base := context.Background()

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if a != nil && a.timeout > 0 {
		ctx, cancel = context.WithTimeout(base, a.timeout)
	} else {
		ctx, cancel = context.WithCancel(base)
	}

	ctx = appLogger.ContextWithActionID(ctx, uuid.NewString())
	if sess != nil && sess.ID != "" {
		ctx = appLogger.ContextWithSessionID(ctx, sess.ID)
	}
	return ctx, cancel
}
