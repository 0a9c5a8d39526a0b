// Package seed builds the demonstration data set the desk starts with.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
)

// Data is a complete seeded state.
type Data struct {
	Rooms       []persistence.Room
	Bookings    []persistence.Customer
	Users       []persistence.User
	Roles       []persistence.Role
	Assignments []Assignment
	Approvals   []persistence.PendingApproval
}

// Build returns the seed data relative to now. The same now always yields
// the same data.
func Build(now time.Time) Data {
	now = now.UTC()
	today := dates.Format(now)

	rooms := buildRooms(now.Year())
	bookings := append(profileBookings(today, rooms), scenarioBookings(today)...)
	users, assignments := buildUsers(now)

	return Data{
		Rooms:       rooms,
		Bookings:    bookings,
		Users:       users,
		Roles:       buildRoles(),
		Assignments: assignments,
		Approvals:   buildApprovals(today),
	}
}

// Target is the set of store mutations Load needs.
type Target interface {
	AddRoom(ctx context.Context, room persistence.Room) error
	AddBooking(ctx context.Context, customer persistence.Customer) error
	AddUser(ctx context.Context, user persistence.User) error
	AddRole(ctx context.Context, role persistence.Role) error
	AssignUserToRole(ctx context.Context, roleID, userID string) error
	AddPendingApproval(ctx context.Context, approval persistence.PendingApproval) error
}

// Load writes data into store. It stops at the first failed write.
func Load(ctx context.Context, store Target, data Data) error {
	for _, room := range data.Rooms {
		if err := store.AddRoom(ctx, room); err != nil {
			return fmt.Errorf("seed room %s: %w", room.RoomCode, err)
		}
	}
	for _, booking := range data.Bookings {
		if err := store.AddBooking(ctx, booking); err != nil {
			return fmt.Errorf("seed booking %s: %w", booking.ID, err)
		}
	}
	for _, role := range data.Roles {
		if err := store.AddRole(ctx, role); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	for _, user := range data.Users {
		if err := store.AddUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.ID, err)
		}
	}
	for _, a := range data.Assignments {
		if err := store.AssignUserToRole(ctx, a.RoleID, a.UserID); err != nil {
			return fmt.Errorf("seed assignment %s -> %s: %w", a.UserID, a.RoleID, err)
		}
	}
	for _, approval := range data.Approvals {
		if err := store.AddPendingApproval(ctx, approval); err != nil {
			return fmt.Errorf("seed approval %s: %w", approval.ID, err)
		}
	}
	return nil
}
