package application

import (
	"errors"

	"github.com/example/frontdesk/internal/persistence"
)

// BookingStore captures the persistence operations needed by the booking
// service.
type BookingStore interface {
	persistence.RoomRepository
	persistence.BookingRepository
	persistence.SnapshotSource
}

// RoomStore captures the persistence operations needed by the room service.
type RoomStore interface {
	persistence.RoomRepository
	persistence.SnapshotSource
}

// AccountStore captures the persistence operations needed by the account
// service.
type AccountStore interface {
	persistence.UserRepository
	persistence.RoleRepository
	persistence.ApprovalRepository
}

// RoleStore captures the persistence operations needed by the role service.
type RoleStore interface {
	persistence.RoleRepository
	persistence.UserRepository
}

// ViewStore captures the reads needed by the list screens.
type ViewStore interface {
	persistence.SnapshotSource
	persistence.UserRepository
	persistence.RoleRepository
}

func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}
