package commands

import (
	"errors"

	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"
)

const MaxRelayBatchSize = 1000

var ErrRelayStatusChangesCommandIsNotConstructed = errors.New(
	"RelayStatusChangesCommand must be created via NewRelayStatusChangesCommand constructor",
)

// RelayStatusChangesCommand publishes up to BatchSize pending outbox messages.
type RelayStatusChangesCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayStatusChangesCommand(batchSize int) (RelayStatusChangesCommand, error) {
	if batchSize < 1 || batchSize > MaxRelayBatchSize {
		return RelayStatusChangesCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, MaxRelayBatchSize)
	}
	return RelayStatusChangesCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayStatusChangesCommand) Validate() error {
	return c.guard.Validate(ErrRelayStatusChangesCommandIsNotConstructed)
}

func (c RelayStatusChangesCommand) BatchSize() int { return c.batchSize }
