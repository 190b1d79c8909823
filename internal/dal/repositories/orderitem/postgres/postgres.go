package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iorderitemrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/postgres"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/orderitem"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var itemColumns = []string{
	"id",
	"order_id",
	"product_id",
	"name",
	"price",
	"quantity",
	"image_url",
	"reserved",
	"created_at",
	"updated_at",
}

type Repository struct {
	conn postgres.Querier
}

var _ iorderitemrepo.Repository = (*Repository)(nil)

func NewRepository(conn postgres.Querier) *Repository {
	return &Repository{conn: conn}
}

// Insert persists the items of one order and returns them with generated ids.
func (r *Repository) Insert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := psql.Insert("order_items").Columns(itemColumns[1:]...)
	for _, item := range items {
		builder = builder.Values(
			item.OrderID,
			item.ProductID,
			item.Name,
			item.Price,
			item.Quantity,
			item.ImageURL,
			item.Reserved,
			item.CreatedAt,
			item.UpdatedAt,
		)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&items[i].ID); err != nil {
			return nil, fmt.Errorf("failed to scan order item id: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// ListByOrder retrieves the items of a single order.
func (r *Repository) ListByOrder(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error) {
	return r.ListByOrders(ctx, []int64{orderID})
}

// ListByOrders retrieves the items of multiple orders in one query.
func (r *Repository) ListByOrders(ctx context.Context, orderIDs []int64) ([]orderitem.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query, args, err := psql.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []orderitem.OrderItem
	for rows.Next() {
		var item orderitem.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.Quantity,
			&item.ImageURL,
			&item.Reserved,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// SetReserved flags or clears the reservation marker on the given items.
func (r *Repository) SetReserved(ctx context.Context, orderID int64, productIDs []int64, reserved bool) error {
	if len(productIDs) == 0 {
		return nil
	}

	query, args, err := psql.Update("order_items").
		Set("reserved", reserved).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"order_id": orderID, "product_id": productIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update order items: %w", err)
	}

	return nil
}

// DeleteByOrder removes all items belonging to an order.
func (r *Repository) DeleteByOrder(ctx context.Context, orderID int64) error {
	query, args, err := psql.Delete("order_items").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	return nil
}
