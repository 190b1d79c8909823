package paymentsvc

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Dip-ankar/Eccomerce/internal/dal/gateway"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/ipaymentrepo"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/currency"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/payment"
)

// gatewayClient is the slice of the gateway API the service consumes.
type gatewayClient interface {
	CreateOrder(ctx context.Context, amount int64, cur string, receipt string) (*gateway.Order, error)
	KeyID() string
}

// PaymentService creates gateway orders and verifies payment signatures.
// The signing secret is injected at construction, never read from ambient
// state at call time.
type PaymentService struct {
	gateway     gatewayClient
	paymentRepo ipaymentrepo.Repository
	secret      []byte
}

type option func(*PaymentService)

// MustNewPaymentService creates a new PaymentService.
func MustNewPaymentService(opts ...option) *PaymentService {
	s := &PaymentService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func WithGatewayClient(client gatewayClient) option {
	return func(s *PaymentService) {
		s.gateway = client
	}
}

func WithPaymentRepository(repo ipaymentrepo.Repository) option {
	return func(s *PaymentService) {
		s.paymentRepo = repo
	}
}

func WithSecret(secret string) option {
	return func(s *PaymentService) {
		s.secret = []byte(secret)
	}
}

// PublicKey returns the gateway API key the storefront embeds client-side.
func (s *PaymentService) PublicKey() string {
	return s.gateway.KeyID()
}

// InitiatePayment creates a gateway order for the amount and persists its
// reference, so later verification runs against a server-side record.
func (s *PaymentService) InitiatePayment(ctx context.Context, amount int64) (*payment.Intent, error) {
	if amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}

	receipt := uuid.NewString()
	gwOrder, err := s.gateway.CreateOrder(ctx, amount, currency.CurrencyINR.String(), receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	intent := payment.Intent{
		GatewayOrderID: gwOrder.ID,
		Amount:         gwOrder.Amount,
		Currency:       currency.CurrencyINR,
		Receipt:        receipt,
		CreatedAt:      time.Now(),
	}

	if err := s.paymentRepo.InsertIntent(ctx, intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

// Sign computes the hex HMAC-SHA256 signature over "orderRef|paymentRef".
func (s *PaymentService) Sign(orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify proves that the supplied signature matches the gateway order and
// payment references. The comparison is constant time, and the expected
// signature is never part of the returned error.
func (s *PaymentService) Verify(orderRef, paymentRef, suppliedSignature string) error {
	expected := s.Sign(orderRef, paymentRef)

	supplied, err := hex.DecodeString(suppliedSignature)
	if err != nil {
		return payment.ErrVerificationFailed
	}

	expectedRaw, _ := hex.DecodeString(expected)
	if !hmac.Equal(expectedRaw, supplied) {
		return payment.ErrVerificationFailed
	}

	return nil
}
