package commands_test

import (
	"errors"
	"testing"

	"evashoes/internal/core/application/usecases/commands"
	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/ledger"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statusHandlerFixture struct {
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	ledgerRepo  *MockLedgerRepository
	uow         *MockUoW
	factory     *MockFulfillmentUoWFactory
	outboxRepo  *MockOutboxRepository
	observer    *MockObserver
}

func newStatusHandlerFixture() *statusHandlerFixture {
	f := &statusHandlerFixture{
		orderRepo:   new(MockOrderRepository),
		productRepo: new(MockProductRepository),
		ledgerRepo:  new(MockLedgerRepository),
		uow:         new(MockUoW),
		factory:     new(MockFulfillmentUoWFactory),
		outboxRepo:  new(MockOutboxRepository),
		observer:    new(MockObserver),
	}
	f.factory.On("Create").Return(f.uow).Once()
	return f
}

func (f *statusHandlerFixture) handler(mode ledger.Mode) commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(f.factory, mode, f.observer)
}

func (f *statusHandlerFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.orderRepo.AssertExpectations(t)
	f.productRepo.AssertExpectations(t)
	f.ledgerRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.outboxRepo.AssertExpectations(t)
	f.observer.AssertExpectations(t)
}

func admin() commands.Actor {
	return commands.Actor{UserID: kernel.NewUUID(), IsAdmin: true}
}

func TestUpdateOrderStatusCommandHandler_Delivered_PerOrder(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture()
	o := restoreOrder(t, kernel.NewUUID(), order.Pending)
	items := o.Items()
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Delivered, nil, admin())
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("ProductRepository").Return(f.productRepo).Once(),
		f.productRepo.On("ConsumeStock", ctx, items[0].ProductID(), 38, 2).Return(nil).Once(),
		f.productRepo.On("IncrementSold", ctx, items[1].ProductID(), 1).Return(nil).Once(),
		f.uow.On("LedgerRepository").Return(f.ledgerRepo).Once(),
		f.ledgerRepo.On("Add", ctx, mock.MatchedBy(func(r *ledger.FinancialRecord) bool {
			return r.OrderID().IsEqual(o.ID()) &&
				r.TotalAmount().String() == "240.00" &&
				r.Cost().String() == "225.00"
		})).Return(nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("OutboxRepository").Return(f.outboxRepo).Once(),
		f.outboxRepo.On("Add", ctx, mock.MatchedBy(func(c order.StatusChange) bool {
			return c.OrderID.IsEqual(o.ID()) && c.From == order.Pending && c.To == order.Delivered
		})).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.observer.On("TransitionApplied", order.Pending, order.Delivered).Return().Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(ledger.PerOrder)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	assert.NotNil(t, o.DeliveredAt())
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Delivered_PerLineItem(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture()
	o := restoreOrder(t, kernel.NewUUID(), order.Shipped)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Delivered, nil, admin())
	require.NoError(t, err)

	var costs []string
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orderRepo).Once()
	f.orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.uow.On("ProductRepository").Return(f.productRepo).Once()
	f.productRepo.On("ConsumeStock", ctx, mock.Anything, 38, 2).Return(nil).Once()
	f.productRepo.On("IncrementSold", ctx, mock.Anything, 1).Return(nil).Once()
	f.uow.On("LedgerRepository").Return(f.ledgerRepo).Once()
	f.ledgerRepo.On("Add", ctx, mock.AnythingOfType("*ledger.FinancialRecord")).
		Run(func(args mock.Arguments) {
			costs = append(costs, args.Get(1).(*ledger.FinancialRecord).Cost().String())
		}).Return(nil).Twice()
	f.orderRepo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("OutboxRepository").Return(f.outboxRepo).Once()
	f.outboxRepo.On("Add", ctx, mock.AnythingOfType("order.StatusChange")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.observer.On("TransitionApplied", order.Shipped, order.Delivered).Return().Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := f.handler(ledger.PerLineItem)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{"200.00", "225.00"}, costs)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_OwnerCancels(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture()
	userID := kernel.NewUUID()
	o := restoreOrder(t, userID, order.Pending)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Cancelled, strPtr("found cheaper"),
		commands.Actor{UserID: userID})
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("OutboxRepository").Return(f.outboxRepo).Once(),
		f.outboxRepo.On("Add", ctx, mock.MatchedBy(func(c order.StatusChange) bool {
			return c.To == order.Cancelled
		})).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.observer.On("TransitionApplied", order.Pending, order.Cancelled).Return().Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(ledger.PerOrder)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
	require.NotNil(t, o.CancelReason())
	assert.Equal(t, "found cheaper", *o.CancelReason())
	f.productRepo.AssertNotCalled(t, "ConsumeStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Forbidden(t *testing.T) {
	tests := []struct {
		name   string
		target order.Status
		owner  bool
	}{
		{"owner cannot deliver", order.Delivered, true},
		{"owner cannot confirm", order.Confirmed, true},
		{"stranger cannot cancel", order.Cancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newStatusHandlerFixture()
			ownerID := kernel.NewUUID()
			o := restoreOrder(t, ownerID, order.Pending)
			actorID := kernel.NewUUID()
			if tt.owner {
				actorID = ownerID
			}
			cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), tt.target, nil, commands.Actor{UserID: actorID})
			require.NoError(t, err)

			mock.InOrder(
				f.uow.On("Begin", ctx).Return(nil).Once(),
				f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
				f.orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
				f.uow.On("Rollback", ctx).Return(nil).Once(),
			)

			h := f.handler(ledger.PerOrder)
			err = h.Handle(ctx, cmd)

			require.ErrorIs(t, err, commands.ErrStatusChangeIsForbidden)
			assert.Equal(t, order.Pending, o.Status())
			f.assertExpectations(t)
		})
	}
}

func TestUpdateOrderStatusCommandHandler_SecondDeliveryIsRejected(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture()
	o := restoreOrder(t, kernel.NewUUID(), order.Delivered)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Delivered, nil, admin())
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.observer.On("TransitionRejected", order.Delivered, order.Delivered).Return().Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(ledger.PerOrder)
	err = h.Handle(ctx, cmd)

	var notAllowed *order.TransitionNotAllowedError
	require.ErrorAs(t, err, &notAllowed)
	require.ErrorIs(t, err, errs.ErrConflict)
	f.productRepo.AssertNotCalled(t, "ConsumeStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.ledgerRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(id, order.Confirmed, nil, admin())
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(ledger.PerOrder)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_StockFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture()
	o := restoreOrder(t, kernel.NewUUID(), order.Pending)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Delivered, nil, admin())
	require.NoError(t, err)
	sizeMissing := errs.NewObjectNotFoundError("product size", "38")

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.uow.On("ProductRepository").Return(f.productRepo).Once(),
		f.productRepo.On("ConsumeStock", ctx, mock.Anything, 38, 2).Return(sizeMissing).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(ledger.PerOrder)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, sizeMissing)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_OutboxFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture()
	o := restoreOrder(t, kernel.NewUUID(), order.Pending)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Confirmed, nil, admin())
	require.NoError(t, err)
	outboxErr := errors.New("outbox insert failed")

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("OutboxRepository").Return(f.outboxRepo).Once(),
		f.outboxRepo.On("Add", ctx, mock.Anything).Return(outboxErr).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(ledger.PerOrder)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, outboxErr)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.observer.AssertNotCalled(t, "TransitionApplied", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newStatusHandlerFixture()
	o := restoreOrder(t, kernel.NewUUID(), order.Pending)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Shipped, nil, admin())
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("OutboxRepository").Return(f.outboxRepo).Once(),
		f.outboxRepo.On("Add", ctx, mock.Anything).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(ledger.PerOrder)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	f.observer.AssertNotCalled(t, "TransitionApplied", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_ValidationError(t *testing.T) {
	f := newStatusHandlerFixture()
	h := f.handler(ledger.PerOrder)

	err := h.Handle(t.Context(), commands.UpdateOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}
