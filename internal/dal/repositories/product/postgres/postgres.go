package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iproductrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/postgres"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/product"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	conn postgres.Querier
}

var _ iproductrepo.Repository = (*Repository)(nil)

func NewRepository(conn postgres.Querier) *Repository {
	return &Repository{conn: conn}
}

// FindByID retrieves a product.
func (r *Repository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := psql.Select("id", "name", "price", "stock", "image_url", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var p product.Product
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Stock,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// DecrementStock atomically decrements stock if enough is available. The
// stock check and the write are one statement, so two concurrent orders
// cannot both consume the same units.
func (r *Repository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	query, args, err := psql.Update("products").
		Set("stock", sq.Expr("stock - ?", quantity)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Where(sq.Expr("stock >= ?", quantity)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// No row updated: either the product is gone or stock ran short.
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return &product.InsufficientStockError{Name: p.Name, Available: p.Stock}
}

// IncrementStock unconditionally returns stock, e.g. on cancellation.
func (r *Repository) IncrementStock(ctx context.Context, id int64, quantity int) error {
	query, args, err := psql.Update("products").
		Set("stock", sq.Expr("stock + ?", quantity)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}

	return nil
}
