package contract

import (
	"context"
	"time"
)

// VisitorRepository persists first-contact records for unique-visitor
// telemetry. RecordSeen must be idempotent per uid.
type VisitorRepository interface {
	RecordSeen(ctx context.Context, uid string, seenAt time.Time) error
	CountUnique(ctx context.Context) (int64, error)
}
