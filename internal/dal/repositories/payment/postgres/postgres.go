package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/ipaymentrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/postgres"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/currency"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/payment"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	conn postgres.Querier
}

var _ ipaymentrepo.Repository = (*Repository)(nil)

func NewRepository(conn postgres.Querier) *Repository {
	return &Repository{conn: conn}
}

// InsertIntent records the gateway order created at payment initiation.
func (r *Repository) InsertIntent(ctx context.Context, intent payment.Intent) error {
	query, args, err := psql.Insert("payment_intents").
		Columns("gateway_order_id", "amount", "currency", "receipt", "created_at").
		Values(
			intent.GatewayOrderID,
			intent.Amount,
			intent.Currency.String(),
			intent.Receipt,
			intent.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert payment intent: %w", err)
	}

	return nil
}

// FindIntent looks up a gateway order reference persisted at initiation.
// A missing row means the claimed gateway order never originated here, which
// callers treat as a verification failure.
func (r *Repository) FindIntent(ctx context.Context, gatewayOrderID string) (*payment.Intent, error) {
	query, args, err := psql.Select("gateway_order_id", "amount", "currency", "receipt", "created_at").
		From("payment_intents").
		Where(sq.Eq{"gateway_order_id": gatewayOrderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var intent payment.Intent
	var cur string
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&intent.GatewayOrderID,
		&intent.Amount,
		&cur,
		&intent.Receipt,
		&intent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.ErrVerificationFailed
		}
		return nil, fmt.Errorf("failed to query payment intent: %w", err)
	}

	parsed, err := currency.ParseCurrency(cur)
	if err != nil {
		return nil, err
	}
	intent.Currency = parsed

	return &intent, nil
}
