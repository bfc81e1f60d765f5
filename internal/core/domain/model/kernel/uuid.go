package kernel

import (
	"fmt"

	"evashoes/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
// This error is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object that identifies orders, products, users and ledger entries.
// It wraps github.com/google/uuid so the domain never depends on the raw type, and it
// is compared by value, so it can be used as a map key.
//
// The zero value of UUID is invalid and must be constructed using one of the provided
// factory functions: NewUUID, UUIDFromString, or UUIDFromBytes. Every aggregate
// constructor calls Validate on the identifiers it receives, so a zero UUID never
// reaches storage.
//
// Example usage:
//
//	// a fresh identity for a new aggregate
//	orderID := kernel.NewUUID()
//
//	// the user id from a verified token
//	userID, err := kernel.UUIDFromString(claims.UserID)
//	if err != nil {
//	    return err
//	}
//
//	o, err := order.NewOrder(orderID, userID, items, total, order.CashOnDelivery,
//	    address, "", order.NewCode(now), now)
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4). It is how commands mint the
// identity of orders, products and ledger records.
//
// Example:
//
//	recordID := kernel.NewUUID()
//	record, err := ledger.NewFinancialRecord(recordID, o.ID(), o.TotalPrice(), cost, now)
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts the formats understood by uuid.Parse:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// A malformed string yields an errs.ValueIsInvalidError, which the HTTP adapter
// answers with 400.
//
// Example:
//
//	productID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid product ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16 byte slice, the form in which persistence
// DTOs and the generated HTTP types hold identifiers. The nil UUID is rejected.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// MustUUIDFromString is UUIDFromString for literals in tests and fixtures. It panics on bad input.
func MustUUIDFromString(s string) UUID {
	id, err := UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence adapters. Repositories pass
// it straight to gorm as a query argument.
//
// Example:
//
//	err := db.First(&dto, "id = ?", id.Bytes()).Error
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
//
// Example:
//
//	if !o.UserID().IsEqual(actor.UserID) {
//	    return ErrStatusChangeIsForbidden
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
