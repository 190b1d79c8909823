package ipaymentrepo

import (
	"context"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/payment"
)

// Repository persists gateway payment intents so that signature verification
// runs against server-side references.
type Repository interface {
	InsertIntent(ctx context.Context, intent payment.Intent) error
	FindIntent(ctx context.Context, gatewayOrderID string) (*payment.Intent, error)
}
