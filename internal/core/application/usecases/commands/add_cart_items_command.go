package commands

import (
	"errors"

	"evashoes/internal/core/domain/model/cart"
	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"
)

var ErrAddCartItemsCommandIsNotConstructed = errors.New(
	"AddCartItemsCommand must be created via NewAddCartItemsCommand constructor",
)

// AddCartItemsCommand adds lines to a customer's cart. Lines are merged with each
// other and with what the cart already holds.
type AddCartItemsCommand struct {
	userID kernel.UUID
	lines  []cart.Line

	guard guard.ConstructorGuard
}

func NewAddCartItemsCommand(userID kernel.UUID, lines []cart.Line) (AddCartItemsCommand, error) {
	var errList []error
	if err := userID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if len(lines) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	if err := errors.Join(errList...); err != nil {
		return AddCartItemsCommand{}, err
	}

	copied := make([]cart.Line, len(lines))
	copy(copied, lines)
	return AddCartItemsCommand{userID: userID, lines: copied, guard: guard.NewConstructorGuard()}, nil
}

func (c AddCartItemsCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemsCommandIsNotConstructed)
}

func (c AddCartItemsCommand) UserID() kernel.UUID { return c.userID }

func (c AddCartItemsCommand) Lines() []cart.Line {
	lines := make([]cart.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}
