package testfixtures

import (
	"context"
	"testing"

	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/persistence/memory"
)

// StoreHarness wraps a fresh in-memory store for repository and service
// tests.
type StoreHarness struct {
	Store *memory.Store
	tb    testing.TB
}

// NewStoreHarness returns a harness around an empty store.
func NewStoreHarness(tb testing.TB) *StoreHarness {
	tb.Helper()
	return &StoreHarness{Store: memory.New(), tb: tb}
}

// Rooms adds the rooms, failing the test on error.
func (h *StoreHarness) Rooms(rooms ...persistence.Room) *StoreHarness {
	h.tb.Helper()
	for _, room := range rooms {
		if err := h.Store.AddRoom(context.Background(), room); err != nil {
			h.tb.Fatalf("AddRoom(%s) failed: %v", room.RoomCode, err)
		}
	}
	return h
}

// Bookings adds the bookings, failing the test on error.
func (h *StoreHarness) Bookings(customers ...persistence.Customer) *StoreHarness {
	h.tb.Helper()
	for _, customer := range customers {
		if err := h.Store.AddBooking(context.Background(), customer); err != nil {
			h.tb.Fatalf("AddBooking(%s) failed: %v", customer.ID, err)
		}
	}
	return h
}

// Users adds the users, failing the test on error.
func (h *StoreHarness) Users(users ...persistence.User) *StoreHarness {
	h.tb.Helper()
	for _, user := range users {
		if err := h.Store.AddUser(context.Background(), user); err != nil {
			h.tb.Fatalf("AddUser(%s) failed: %v", user.ID, err)
		}
	}
	return h
}

// Roles adds the roles, failing the test on error.
func (h *StoreHarness) Roles(roles ...persistence.Role) *StoreHarness {
	h.tb.Helper()
	for _, role := range roles {
		if err := h.Store.AddRole(context.Background(), role); err != nil {
			h.tb.Fatalf("AddRole(%s) failed: %v", role.Name, err)
		}
	}
	return h
}

// Assign puts userID into roleID, failing the test on error.
func (h *StoreHarness) Assign(roleID, userID string) *StoreHarness {
	h.tb.Helper()
	if err := h.Store.AssignUserToRole(context.Background(), roleID, userID); err != nil {
		h.tb.Fatalf("AssignUserToRole(%s, %s) failed: %v", roleID, userID, err)
	}
	return h
}

// Approvals adds pending registration requests, failing the test on error.
func (h *StoreHarness) Approvals(approvals ...persistence.PendingApproval) *StoreHarness {
	h.tb.Helper()
	for _, approval := range approvals {
		if err := h.Store.AddPendingApproval(context.Background(), approval); err != nil {
			h.tb.Fatalf("AddPendingApproval(%s) failed: %v", approval.ID, err)
		}
	}
	return h
}
