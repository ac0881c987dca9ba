package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), &orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("order_line_items", "orders"))
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderWithItems() {
	ctx := context.Background()
	created := suite.createOrder(kernel.NewUUID(), "ORD-20260415-AAAAAAAA", order.PaymentMethodCOD, time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(created.Number(), loaded.Number())
	suite.Equal(order.Processing, loaded.Status())
	suite.Equal(order.PaymentPending, loaded.PaymentStatus())
	suite.Equal("Lan", loaded.Customer().Name())
	suite.Equal("120000.00", loaded.Subtotal().String())
	suite.Equal("135000.00", loaded.GrandTotal().String())
	suite.Require().Len(loaded.Items(), 2)
	suite.Equal("Notebook", loaded.Items()[0].Name())
	suite.Equal("Pen", loaded.Items()[1].Name())
	suite.WithinDuration(created.CreatedAt(), loaded.CreatedAt(), time.Millisecond)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumberIsConflict() {
	ctx := context.Background()
	first := suite.createOrder(kernel.NewUUID(), "ORD-20260415-DUPLICAT", order.PaymentMethodCOD, time.Now())
	second := suite.createOrder(kernel.NewUUID(), "ORD-20260415-DUPLICAT", order.PaymentMethodCOD, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ConflictKeepsOuterTransactionUsable() {
	ctx := context.Background()
	first := suite.createOrder(kernel.NewUUID(), "ORD-20260415-DUPLICAT", order.PaymentMethodCOD, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, first))

	tx := suite.database.DB.Begin()
	suite.Require().NoError(tx.Error)
	repo := orderrepo.NewGormOrderRepository(tx)

	duplicate := suite.createOrder(kernel.NewUUID(), "ORD-20260415-DUPLICAT", order.PaymentMethodCOD, time.Now())
	suite.Require().ErrorIs(repo.Add(ctx, duplicate), errs.ErrConflict)

	retry := suite.createOrder(kernel.NewUUID(), "ORD-20260415-RETRIED1", order.PaymentMethodCOD, time.Now())
	suite.Require().NoError(repo.Add(ctx, retry))
	suite.Require().NoError(tx.Commit().Error)

	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsWorkflowFields() {
	ctx := context.Background()
	created := suite.createOrder(kernel.NewUUID(), "ORD-20260415-AAAAAAAA", order.PaymentMethodCOD, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, created))

	shippedAt := time.Now().UTC()
	_, err := created.ChangeStatus(order.Shipped, shippedAt)
	suite.Require().NoError(err)
	created.SetTrackingNumber("VN123456")
	_, err = created.ChangeStatus(order.Delivered, shippedAt.Add(time.Hour))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.GetForUpdate(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, loaded.Status())
	suite.Equal(order.PaymentCompleted, loaded.PaymentStatus())
	suite.Equal("VN123456", loaded.TrackingNumber())
	suite.Require().NotNil(loaded.ShippedAt())
	suite.Require().NotNil(loaded.DeliveredAt())
	suite.Require().NotNil(loaded.DeliveryConfirmedAt())
	suite.Len(loaded.Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CancelledOrderKeepsStockRestoredFlag() {
	ctx := context.Background()
	created := suite.createOrder(kernel.NewUUID(), "ORD-20260415-AAAAAAAA", order.PaymentMethodCard, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, created))

	_, err := created.ChangeStatus(order.Cancelled, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.True(loaded.StockRestored())
	_, err = loaded.ChangeStatus(order.Cancelled, time.Now())
	suite.Require().ErrorIs(err, errs.ErrInvalidTransition)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	missing := suite.createOrder(kernel.NewUUID(), "ORD-20260415-MISSING1", order.PaymentMethodCOD, time.Now())

	err := suite.repository.Update(context.Background(), missing)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByUser_NewestFirstWithLimit() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	for i, number := range []string{"ORD-20260401-AAAAAAA1", "ORD-20260402-AAAAAAA2", "ORD-20260403-AAAAAAA3"} {
		o := suite.createOrder(userID, number, order.PaymentMethodCOD, base.Add(time.Duration(i)*24*time.Hour))
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	other := suite.createOrder(kernel.NewUUID(), "ORD-20260403-OTHERUSR", order.PaymentMethodCOD, base)
	suite.Require().NoError(suite.repository.Add(ctx, other))

	all, err := suite.repository.ListByUser(ctx, userID, 0)
	suite.Require().NoError(err)
	limited, err := suite.repository.ListByUser(ctx, userID, 1)
	suite.Require().NoError(err)

	suite.Require().Len(all, 3)
	suite.Equal("ORD-20260403-AAAAAAA3", all[0].Number())
	suite.Equal("ORD-20260401-AAAAAAA1", all[2].Number())
	suite.Len(all[0].Items(), 2)
	suite.Require().Len(limited, 1)
	suite.Equal("ORD-20260403-AAAAAAA3", limited[0].Number())
}

func (suite *OrderRepositoryIntegrationTestSuite) createOrder(
	userID kernel.UUID, number string, method order.PaymentMethod, createdAt time.Time,
) *order.Order {
	notebookPrice, err := kernel.MoneyFromInt(50000)
	suite.Require().NoError(err)
	penPrice, err := kernel.MoneyFromInt(10000)
	suite.Require().NoError(err)
	shipping, err := kernel.MoneyFromInt(15000)
	suite.Require().NoError(err)

	notebook, err := order.NewLineItem(kernel.NewUUID(), "Notebook", notebookPrice, 2)
	suite.Require().NoError(err)
	pen, err := order.NewLineItem(kernel.NewUUID(), "Pen", penPrice, 2)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), number, userID,
		order.NewCustomerInfo("Lan", "0901234567", "lan@example.com", "12 Le Loi"),
		method, []order.LineItem{notebook, pen}, shipping, createdAt.UTC(),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.database.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
