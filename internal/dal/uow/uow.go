package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iorderitemrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iorderrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/ioutboxrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/ipaymentrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/interfaces/iproductrepo"
	"github.com/Dip-ankar/Eccomerce/internal/dal/postgres"
	orderrepo "github.com/Dip-ankar/Eccomerce/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/Dip-ankar/Eccomerce/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/Dip-ankar/Eccomerce/internal/dal/repositories/outbox/postgres"
	paymentrepo "github.com/Dip-ankar/Eccomerce/internal/dal/repositories/payment/postgres"
	productrepo "github.com/Dip-ankar/Eccomerce/internal/dal/repositories/product/postgres"
)

// UnitOfWork scopes the repositories to one transaction. Before Begin the
// repositories run against the pool; after Begin they share a single pgx.Tx
// until Commit or Rollback.
type UnitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorderrepo.Repository
	orderItemRepo iorderitemrepo.Repository
	productRepo   iproductrepo.Repository
	paymentRepo   ipaymentrepo.Repository
	outboxRepo    ioutboxrepo.Repository
}

func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.Querier) {
	u.orderRepo = orderrepo.NewRepository(conn)
	u.orderItemRepo = orderitemrepo.NewRepository(conn)
	u.productRepo = productrepo.NewRepository(conn)
	u.paymentRepo = paymentrepo.NewRepository(conn)
	u.outboxRepo = outboxrepo.NewRepository(conn)
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) OrderRepository() iorderrepo.Repository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.Repository {
	return u.orderItemRepo
}

func (u *UnitOfWork) ProductRepository() iproductrepo.Repository {
	return u.productRepo
}

func (u *UnitOfWork) PaymentRepository() ipaymentrepo.Repository {
	return u.paymentRepo
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.Repository {
	return u.outboxRepo
}
