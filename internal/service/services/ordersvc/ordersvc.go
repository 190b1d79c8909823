package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iorderitemrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iorderrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/ioutboxrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/ipaymentrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iproductrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/postgres"
	"github.com/Dip-ankar/Eccomerce/internal/dal/uow"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/currency"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/order"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/orderitem"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/outbox"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/payment"
	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
	"github.com/Dip-ankar/Eccomerce/internal/service/services/inventorysvc"
)

// OrderService owns the order lifecycle. It is the sole authority for
// triggering inventory adjustments on status transitions.
type OrderService struct {
	pgClient   *postgres.Client
	inventory  *inventorysvc.Ledger
	verifier   paymentVerifier
	uowFactory func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.Repository
	OrderItemRepository() iorderitemrepo.Repository
	ProductRepository() iproductrepo.Repository
	PaymentRepository() ipaymentrepo.Repository
	OutboxRepository() ioutboxrepo.Repository
}

type paymentVerifier interface {
	Verify(orderRef, paymentRef, suppliedSignature string) error
}

func (s *OrderService) newUOW() unitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}
	return uow.NewUnitOfWork(s.pgClient)
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		inventory: inventorysvc.NewLedger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithPaymentVerifier sets the payment verifier for the OrderService.
func WithPaymentVerifier(verifier paymentVerifier) option {
	return func(s *OrderService) {
		s.verifier = verifier
	}
}

// WithUnitOfWorkFactory overrides the unit of work construction.
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// CreateOrderItemInput is a single cart line in a creation request. Price is
// the price the client saw; when set it must still match the catalog. Zero
// means the client did not echo a price and the catalog price is used as-is.
type CreateOrderItemInput struct {
	ProductID int64
	Quantity  int
	Price     int64
}

// PaymentProof carries the client's claim that the gateway accepted the
// payment. The gateway order reference is resolved against the intent
// persisted at initiation, never trusted as-is.
type PaymentProof struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

type CreateOrderInput struct {
	UserID       int64
	Items        []CreateOrderItemInput
	ShippingInfo order.ShippingInfo
	Payment      PaymentProof
}

func (in *CreateOrderInput) validate() error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", order.ErrValidation)
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for product %d", order.ErrValidation, item.ProductID)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: price must not be negative for product %d", order.ErrValidation, item.ProductID)
		}
	}

	return nil
}

// Create verifies the payment, snapshots catalog prices, computes the price
// fields and persists the order in Processing state. Stock is not touched at
// creation; reservation happens on the Shipped or Delivered transition.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*order.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	items := make([]orderitem.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		p, err := work.ProductRepository().FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if line.Price != 0 && line.Price != p.Price {
			return nil, fmt.Errorf("%w: price of %s changed, refresh the cart", order.ErrValidation, p.Name)
		}
		items = append(items, orderitem.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			ImageURL:  p.ImageURL,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	o := order.Order{
		UserID:       in.UserID,
		ShippingInfo: in.ShippingInfo,
		Currency:     currency.CurrencyINR,
		Status:       order.StatusProcessing,
		CreatedAt:    now,
		UpdatedAt:    now,
		OrderItems:   items,
	}
	o.ComputePrices()

	intent, err := work.PaymentRepository().FindIntent(ctx, in.Payment.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.Verify(intent.GatewayOrderID, in.Payment.GatewayPaymentID, in.Payment.Signature); err != nil {
		return nil, err
	}
	if intent.Amount != o.TotalPrice {
		return nil, payment.ErrVerificationFailed
	}

	paidAt := now
	o.PaidAt = &paidAt
	o.PaymentInfo = order.PaymentInfo{
		GatewayOrderID:   intent.GatewayOrderID,
		GatewayPaymentID: in.Payment.GatewayPaymentID,
		Status:           order.PaymentPaid,
	}

	o, err = work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	for i := range o.OrderItems {
		o.OrderItems[i].OrderID = o.ID
	}
	o.OrderItems, err = work.OrderItemRepository().Insert(ctx, o.OrderItems)
	if err != nil {
		return nil, err
	}

	if err := s.publishEvent(ctx, work, outbox.EventOrderCreated, &o, now); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return &o, nil
}

// UpdateStatus moves an order forward to Shipped or Delivered. Entering
// either state reserves stock for every item that is not reserved yet; any
// shortfall aborts the whole transition with inventory unchanged.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	actor principal.Principal,
	orderID int64,
	next order.Status,
) (*order.Order, error) {
	if !actor.IsAdmin() {
		return nil, principal.ErrUnauthorized
	}
	if next != order.StatusShipped && next != order.StatusDelivered {
		return nil, fmt.Errorf("%w: status must be %s or %s", order.ErrValidation, order.StatusShipped, order.StatusDelivered)
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o, err := s.loadOrder(ctx, work, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status == order.StatusDelivered {
		return nil, fmt.Errorf("%w: order already delivered", order.ErrInvalidTransition)
	}
	if !o.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", order.ErrInvalidTransition, o.Status, next)
	}

	unreserved := make([]orderitem.OrderItem, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		if !item.Reserved {
			unreserved = append(unreserved, item)
		}
	}

	if err := s.inventory.ReserveAll(ctx, work.ProductRepository(), unreserved); err != nil {
		return nil, err
	}
	if err := s.markReserved(ctx, work, o, unreserved, true); err != nil {
		return nil, err
	}

	patch := iorderrepo.StatusPatch{}
	if next == order.StatusDelivered {
		deliveredAt := now
		patch.DeliveredAt = &deliveredAt
		o.DeliveredAt = &deliveredAt
	}

	if err := work.OrderRepository().UpdateStatus(ctx, o.ID, o.Status, next, patch); err != nil {
		return nil, err
	}
	o.Status = next
	o.UpdatedAt = now

	if err := s.publishEvent(ctx, work, outbox.EventOrderStatusUpdated, o, now); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// Cancel exits the lifecycle before delivery. Only the owning user may
// cancel. Stock is restored for exactly the items whose reservation was
// actually applied; items never reserved are not credited back.
func (s *OrderService) Cancel(
	ctx context.Context,
	actor principal.Principal,
	orderID int64,
) (*order.Order, error) {
	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o, err := s.loadOrder(ctx, work, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.UserID {
		return nil, fmt.Errorf("%w: order not found or not owned by user", order.ErrNotFound)
	}

	if o.Status == order.StatusDelivered {
		return nil, fmt.Errorf("%w: cannot cancel a delivered order", order.ErrInvalidTransition)
	}
	if o.Status == order.StatusCancelled {
		return nil, fmt.Errorf("%w: order already cancelled", order.ErrInvalidTransition)
	}

	reserved := make([]orderitem.OrderItem, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		if item.Reserved {
			reserved = append(reserved, item)
		}
	}

	if err := s.inventory.RestoreAll(ctx, work.ProductRepository(), reserved); err != nil {
		return nil, err
	}
	if err := s.markReserved(ctx, work, o, reserved, false); err != nil {
		return nil, err
	}

	cancelledAt := now
	patch := iorderrepo.StatusPatch{CancelledAt: &cancelledAt}
	if err := work.OrderRepository().UpdateStatus(ctx, o.ID, o.Status, order.StatusCancelled, patch); err != nil {
		return nil, err
	}
	o.Status = order.StatusCancelled
	o.CancelledAt = &cancelledAt
	o.UpdatedAt = now

	if err := s.publishEvent(ctx, work, outbox.EventOrderCancelled, o, now); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// Delete permanently removes a delivered order. Deleting a fulfilled order
// is bookkeeping cleanup, not a refund: reserved stock stays consumed.
func (s *OrderService) Delete(ctx context.Context, actor principal.Principal, orderID int64) error {
	if !actor.IsAdmin() {
		return principal.ErrUnauthorized
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o, err := s.loadOrder(ctx, work, orderID)
	if err != nil {
		return err
	}
	if o.Status != order.StatusDelivered {
		return order.ErrNotDeletable
	}

	if err := work.OrderItemRepository().DeleteByOrder(ctx, o.ID); err != nil {
		return err
	}
	if err := work.OrderRepository().Delete(ctx, o.ID); err != nil {
		return err
	}

	if err := s.publishEvent(ctx, work, outbox.EventOrderDeleted, o, now); err != nil {
		return err
	}

	return work.Commit(ctx)
}

// Get retrieves one order with its items. Owners see their own orders;
// admins see all. Another user's order reads as not found, so existence is
// not disclosed, same as Cancel.
func (s *OrderService) Get(ctx context.Context, actor principal.Principal, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := s.loadOrder(ctx, work, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && o.UserID != actor.UserID {
		return nil, fmt.Errorf("%w: order not found or not owned by user", order.ErrNotFound)
	}

	return o, nil
}

// ListMine retrieves the orders of the requesting user.
func (s *OrderService) ListMine(ctx context.Context, actor principal.Principal) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		UserIds: []int64{actor.UserID},
	})
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, work, orders)
}

// ListAll retrieves orders matching the filter plus the total revenue across
// them. Admin only.
func (s *OrderService) ListAll(
	ctx context.Context,
	actor principal.Principal,
	filter *order.QueryOrdersModel,
) ([]order.Order, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, principal.ErrUnauthorized
	}
	if filter == nil {
		filter = &order.QueryOrdersModel{}
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	orders, err = s.attachItems(ctx, work, orders)
	if err != nil {
		return nil, 0, err
	}

	var totalAmount int64
	for _, o := range orders {
		totalAmount += o.TotalPrice
	}

	return orders, totalAmount, nil
}

func (s *OrderService) loadOrder(ctx context.Context, work unitOfWork, orderID int64) (*order.Order, error) {
	o, err := work.OrderRepository().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.OrderItems = items

	return o, nil
}

func (s *OrderService) attachItems(ctx context.Context, work unitOfWork, orders []order.Order) ([]order.Order, error) {
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	items, err := work.OrderItemRepository().ListByOrders(ctx, ids)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]orderitem.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].OrderItems = byOrder[orders[i].ID]
	}

	return orders, nil
}

func (s *OrderService) markReserved(
	ctx context.Context,
	work unitOfWork,
	o *order.Order,
	items []orderitem.OrderItem,
	reserved bool,
) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	if err := work.OrderItemRepository().SetReserved(ctx, o.ID, ids, reserved); err != nil {
		return err
	}

	for i := range o.OrderItems {
		for _, id := range ids {
			if o.OrderItems[i].ProductID == id {
				o.OrderItems[i].Reserved = reserved
			}
		}
	}

	return nil
}

func (s *OrderService) publishEvent(
	ctx context.Context,
	work unitOfWork,
	eventType string,
	o *order.Order,
	now time.Time,
) error {
	payload, err := json.Marshal(outbox.OrderEvent{
		Type:       eventType,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     o.Status.String(),
		TotalPrice: o.TotalPrice,
		OccurredAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	maxRetries := viper.GetInt("rabbitmq.order_events.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return work.OutboxRepository().Insert(ctx, outbox.Message{
		QueueName:   viper.GetString("rabbitmq.order_events.queue"),
		RoutingKey:  viper.GetString("rabbitmq.order_events.queue"),
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}
