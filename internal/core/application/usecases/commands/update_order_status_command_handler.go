package commands

import (
	"context"
	"errors"
	"time"

	"evashoes/internal/core/domain/model/ledger"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/core/domain/services"
	"evashoes/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies a status transition and, for deliveries, the
// inventory and ledger side effects, all inside one transaction.
//
// The accepted change is written to the outbox in that same transaction; the relay
// publishes it later, so a committed transition is never without its event. After a
// successful commit the change is reported to the TransitionObserver.
type UpdateOrderStatusCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	planner    services.FulfillmentPlanner
	ledgerMode ledger.Mode
	observer   ports.TransitionObserver
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory FulfillmentUoWFactory,
	ledgerMode ledger.Mode,
	observer ports.TransitionObserver,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		ledgerMode: ledgerMode,
		observer:   observer,
	}
}

// Handle runs the transition:
//   - the order is loaded with a row lock, so concurrent changes of it are serialized
//   - cancelled: cancel metadata is stamped, nothing is restocked
//   - delivered: every sized line consumes stock of its size and bumps sold, sizeless
//     lines only bump sold, then ledger records are written per the ledger mode
//   - the change is queued in the outbox
//   - any failing step rolls the whole transition back
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = authorizeStatusChange(o, cmd); err != nil {
		return err
	}

	now := time.Now().UTC()
	from := o.Status()
	change, err := o.ChangeStatus(cmd.Status(), cmd.CancelReason(), now)
	if err != nil {
		var notAllowed *order.TransitionNotAllowedError
		if errors.As(err, &notAllowed) {
			h.observer.TransitionRejected(from, cmd.Status())
		}
		return err
	}

	if change.To == order.Delivered {
		if err = h.fulfill(ctx, uow, o, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, change); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.observer.TransitionApplied(change.From, change.To)
	return nil
}

func (h *UpdateOrderStatusCommandHandler) fulfill(
	ctx context.Context,
	uow FulfillmentUoW,
	o *order.Order,
	now time.Time,
) error {
	plan, err := h.planner.Plan(o, h.ledgerMode, now)
	if err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	for _, adj := range plan.Adjustments {
		if adj.HasSize {
			err = productRepo.ConsumeStock(ctx, adj.ProductID, adj.Size, adj.Quantity)
		} else {
			err = productRepo.IncrementSold(ctx, adj.ProductID, adj.Quantity)
		}
		if err != nil {
			return err
		}
	}

	ledgerRepo := uow.LedgerRepository()
	for _, record := range plan.Records {
		if err = ledgerRepo.Add(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

func authorizeStatusChange(o *order.Order, cmd UpdateOrderStatusCommand) error {
	actor := cmd.Actor()
	if actor.IsAdmin {
		return nil
	}
	if !o.UserID().IsEqual(actor.UserID) || cmd.Status() != order.Cancelled {
		return ErrStatusChangeIsForbidden
	}
	return nil
}
