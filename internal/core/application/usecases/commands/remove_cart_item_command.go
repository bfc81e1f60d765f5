package commands

import (
	"errors"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand removes every line of one product from a cart.
type RemoveCartItemCommand struct {
	userID    kernel.UUID
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(userID, productID kernel.UUID) (RemoveCartItemCommand, error) {
	var errList []error
	if err := userID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if err := productID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("productId", err))
	}
	if err := errors.Join(errList...); err != nil {
		return RemoveCartItemCommand{}, err
	}
	return RemoveCartItemCommand{userID: userID, productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) UserID() kernel.UUID { return c.userID }

func (c RemoveCartItemCommand) ProductID() kernel.UUID { return c.productID }
