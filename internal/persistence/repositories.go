package persistence

import "context"

// RoomRepository exposes the room inventory operations.
type RoomRepository interface {
	AddRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	RemoveRoom(ctx context.Context, id string) error
	GetRoom(ctx context.Context, id string) (Room, error)
	RoomByCode(ctx context.Context, code string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
}

// BookingRepository stores booking records. Updates replace the whole record,
// including nested room stays and guests.
type BookingRepository interface {
	AddBooking(ctx context.Context, customer Customer) error
	UpdateBooking(ctx context.Context, customer Customer) error
	RemoveBooking(ctx context.Context, id string) error
	RemoveBookingsByEmail(ctx context.Context, email string) (int, error)
	GetBooking(ctx context.Context, id string) (Customer, error)
	BookingByBookingID(ctx context.Context, bookingID string) (Customer, error)
	ListBookings(ctx context.Context) ([]Customer, error)
}

// UserRepository stores administrative accounts.
type UserRepository interface {
	AddUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// RoleRepository stores roles and the single user -> role assignment.
type RoleRepository interface {
	AddRole(ctx context.Context, role Role) error
	UpdateRole(ctx context.Context, role Role) error
	RemoveRole(ctx context.Context, id string) error
	GetRole(ctx context.Context, id string) (Role, error)
	RoleByName(ctx context.Context, name string) (Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	AssignUserToRole(ctx context.Context, roleID, userID string) error
	RemoveUserFromRole(ctx context.Context, roleID, userID string) error
	RoleMembers(ctx context.Context, roleID string) ([]User, error)
	RoleOfUser(ctx context.Context, userID string) (Role, error)
}

// ApprovalRepository stores pending self-registration requests.
type ApprovalRepository interface {
	AddPendingApproval(ctx context.Context, approval PendingApproval) error
	GetPendingApproval(ctx context.Context, id string) (PendingApproval, error)
	ListPendingApprovals(ctx context.Context) ([]PendingApproval, error)
	RemovePendingApproval(ctx context.Context, id string) error
}

// SnapshotSource exposes consistent read views for projections.
type SnapshotSource interface {
	Revision() uint64
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Store is the full entity store surface.
type Store interface {
	RoomRepository
	BookingRepository
	UserRepository
	RoleRepository
	ApprovalRepository
	SnapshotSource
}
