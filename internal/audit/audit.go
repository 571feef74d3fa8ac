package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// Action represents the action being audited
type Action string

const (
	ActionLogin     Action = "login"
	ActionSignup    Action = "signup"
	ActionAuthorize Action = "authorize"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

// Event represents a single audit record
type Event struct {
	ID           uuid.UUID
	ActorID      *uuid.UUID
	Provider     string
	Action       Action
	Status       Status
	Path         string
	IPAddress    string
	UserAgent    string
	RequestID    string
	ErrorMessage string
	CreatedAt    time.Time
}

// Recorder persists audit events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(ctx context.Context, event *Event) error
}

// PostgresRecorder writes audit events to the audit_events table
type PostgresRecorder struct {
	pool *pgxpool.Pool
}

func NewPostgresRecorder(pool *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{pool: pool}
}

func (r *PostgresRecorder) Record(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO audit_events (
			id, actor_id, provider, action, status, path,
			ip_address, user_agent, request_id, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.ActorID,
		event.Provider,
		event.Action,
		event.Status,
		event.Path,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		event.ErrorMessage,
		event.CreatedAt,
	)

	return err
}

const recordTimeout = 500 * time.Millisecond

// FromContext builds an event pre-filled with request metadata.
func FromContext(c echo.Context, action Action, status Status) *Event {
	return &Event{
		Action:    action,
		Status:    status,
		Path:      c.Request().URL.Path,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}
}

// RecordAsync records an event best-effort off the request path. A nil
// recorder is a no-op, so callers never need to guard.
func RecordAsync(recorder Recorder, c echo.Context, event *Event) {
	if recorder == nil {
		return
	}

	logger := c.Logger()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := recorder.Record(ctx, event); err != nil {
			logger.Warnf("failed to record audit event: %v", err)
		}
	}()
}
