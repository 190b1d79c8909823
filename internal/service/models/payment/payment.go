package payment

import (
	"errors"
	"time"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/currency"
)

var (
	// ErrVerificationFailed is returned on any signature or amount
	// mismatch. The expected signature is never included.
	ErrVerificationFailed = errors.New("payment verification failed")

	ErrInvalidAmount = errors.New("invalid payment amount")
)

// Intent is the server-side record of a gateway order created at payment
// initiation. Signature verification runs against the persisted
// GatewayOrderID, not a value echoed back by the client.
type Intent struct {
	GatewayOrderID string            `json:"gatewayOrderId"`
	Amount         int64             `json:"amount"`
	Currency       currency.Currency `json:"currency"`
	Receipt        string            `json:"receipt"`
	CreatedAt      time.Time         `json:"createdAt"`
}
