package kernel

import (
	"bytes"
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes",
)

// UUID identifies users, products, carts and orders. The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any textual form accepted by github.com/google/uuid.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes restores a UUID from its 16 byte form, as stored by the postgres adapters.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value for persistence mapping.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Compare orders UUIDs bytewise. Used to take row locks in a stable order.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u.id[:], other.id[:])
}

func (u UUID) Less(other UUID) bool {
	return u.Compare(other) < 0
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
