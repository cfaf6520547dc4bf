package contract

import "context"

// SubscriberRepository stores captured emails. Save is idempotent: saving an
// address twice reports AlreadySubscribed instead of an error.
type SubscriberRepository interface {
	Save(ctx context.Context, email string) (alreadySubscribed bool, err error)
}
