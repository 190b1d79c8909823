package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iorderrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/postgres"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/currency"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/orderitem"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// OrderDal represents the order row.
type OrderDal struct {
	Id               int64
	UserId           int64
	Address          string
	City             string
	State            string
	Country          string
	PinCode          string
	Phone            string
	GatewayOrderId   string
	GatewayPaymentId string
	PaymentStatus    string
	ItemPrice        int64
	TaxPrice         int64
	ShippingPrice    int64
	TotalPrice       int64
	Currency         string
	OrderStatus      string
	PaidAt           *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var orderColumns = []string{
	"id",
	"user_id",
	"address",
	"city",
	"state",
	"country",
	"pin_code",
	"phone",
	"gateway_order_id",
	"gateway_payment_id",
	"payment_status",
	"item_price",
	"tax_price",
	"shipping_price",
	"total_price",
	"currency",
	"order_status",
	"paid_at",
	"delivered_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

func (d *OrderDal) scan(row pgx.Row) error {
	return row.Scan(
		&d.Id,
		&d.UserId,
		&d.Address,
		&d.City,
		&d.State,
		&d.Country,
		&d.PinCode,
		&d.Phone,
		&d.GatewayOrderId,
		&d.GatewayPaymentId,
		&d.PaymentStatus,
		&d.ItemPrice,
		&d.TaxPrice,
		&d.ShippingPrice,
		&d.TotalPrice,
		&d.Currency,
		&d.OrderStatus,
		&d.PaidAt,
		&d.DeliveredAt,
		&d.CancelledAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

// ToModel converts OrderDal to the service layer Order model.
func (d *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(d.Currency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(d.OrderStatus)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:     d.Id,
		UserID: d.UserId,
		ShippingInfo: order.ShippingInfo{
			Address: d.Address,
			City:    d.City,
			State:   d.State,
			Country: d.Country,
			PinCode: d.PinCode,
			Phone:   d.Phone,
		},
		PaymentInfo: order.PaymentInfo{
			GatewayOrderID:   d.GatewayOrderId,
			GatewayPaymentID: d.GatewayPaymentId,
			Status:           order.PaymentStatus(d.PaymentStatus),
		},
		ItemPrice:     d.ItemPrice,
		TaxPrice:      d.TaxPrice,
		ShippingPrice: d.ShippingPrice,
		TotalPrice:    d.TotalPrice,
		Currency:      cur,
		Status:        status,
		PaidAt:        d.PaidAt,
		DeliveredAt:   d.DeliveredAt,
		CancelledAt:   d.CancelledAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		OrderItems:    []orderitem.OrderItem{},
	}, nil
}

type Repository struct {
	conn postgres.Querier
}

var _ iorderrepo.Repository = (*Repository)(nil)

func NewRepository(conn postgres.Querier) *Repository {
	return &Repository{conn: conn}
}

// Insert persists a new order and returns it with the generated id.
func (r *Repository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := psql.Insert("orders").
		Columns(orderColumns[1:]...).
		Values(
			o.UserID,
			o.ShippingInfo.Address,
			o.ShippingInfo.City,
			o.ShippingInfo.State,
			o.ShippingInfo.Country,
			o.ShippingInfo.PinCode,
			o.ShippingInfo.Phone,
			o.PaymentInfo.GatewayOrderID,
			o.PaymentInfo.GatewayPaymentID,
			string(o.PaymentInfo.Status),
			o.ItemPrice,
			o.TaxPrice,
			o.ShippingPrice,
			o.TotalPrice,
			o.Currency.String(),
			o.Status.String(),
			o.PaidAt,
			o.DeliveredAt,
			o.CancelledAt,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// FindByID retrieves a single order without its items.
func (r *Repository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal OrderDal
	if err := dal.scan(r.conn.QueryRow(ctx, query, args...)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return dal.ToModel()
}

// Query retrieves orders based on filter criteria.
func (r *Repository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := psql.Select(orderColumns...).
		From("orders").
		OrderBy("id")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.UserIds) > 0 {
		builder = builder.Where(sq.Eq{"user_id": filter.UserIds})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		if err := dal.scan(rows); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus moves the order from one status to another. The previous
// status is part of the predicate, so a transition that raced with another
// writer affects zero rows and returns order.ErrStatusConflict.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	from, to order.Status,
	patch iorderrepo.StatusPatch,
) error {
	builder := psql.Update("orders").
		Set("order_status", to.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "order_status": from.String()})

	if patch.DeliveredAt != nil {
		builder = builder.Set("delivered_at", *patch.DeliveredAt)
	}
	if patch.CancelledAt != nil {
		builder = builder.Set("cancelled_at", *patch.CancelledAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrStatusConflict
	}

	return nil
}

// Delete removes the order row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	return nil
}
