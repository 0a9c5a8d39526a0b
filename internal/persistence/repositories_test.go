package persistence_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/testfixtures"
)

func newPersistenceRoom(opts ...testfixtures.RoomOption) persistence.Room {
	return testfixtures.NewRoomFixture(opts...).Persistence()
}

func newPersistenceBooking(opts ...testfixtures.BookingOption) persistence.Customer {
	return testfixtures.NewBookingFixture(opts...).Persistence()
}

func roomCodes(rooms []persistence.Room) []string {
	codes := make([]string, len(rooms))
	for i, room := range rooms {
		codes[i] = room.RoomCode
	}
	return codes
}

func TestRoomRepository(t *testing.T) {
	t.Parallel()

	t.Run("lists rooms in natural code order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewStoreHarness(t).Rooms(
			newPersistenceRoom(testfixtures.WithRoomCode("RM101")),
			newPersistenceRoom(testfixtures.WithRoomCode("RM9")),
			newPersistenceRoom(testfixtures.WithRoomCode("RM20")),
		)

		rooms, err := harness.Store.ListRooms(ctx)
		if err != nil {
			t.Fatalf("ListRooms failed: %v", err)
		}
		if got := roomCodes(rooms); !slices.Equal(got, []string{"RM9", "RM20", "RM101"}) {
			t.Fatalf("unexpected order: %v", got)
		}
	})

	t.Run("keeps the code index in step with updates", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		room := newPersistenceRoom(testfixtures.WithRoomID("r1"), testfixtures.WithRoomCode("RM101"))
		harness := testfixtures.NewStoreHarness(t).Rooms(room)

		room.RoomCode = "RM111"
		if err := harness.Store.UpdateRoom(ctx, room); err != nil {
			t.Fatalf("UpdateRoom failed: %v", err)
		}
		if _, err := harness.Store.RoomByCode(ctx, "RM101"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected stale code to miss, got %v", err)
		}
		fetched, err := harness.Store.RoomByCode(ctx, "rm111")
		if err != nil {
			t.Fatalf("RoomByCode failed: %v", err)
		}
		if fetched.ID != "r1" {
			t.Fatalf("expected r1, got %#v", fetched)
		}
	})

	t.Run("rejects duplicate ids and codes", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewStoreHarness(t).Rooms(
			newPersistenceRoom(testfixtures.WithRoomID("r1"), testfixtures.WithRoomCode("RM101")),
			newPersistenceRoom(testfixtures.WithRoomID("r2"), testfixtures.WithRoomCode("RM102")),
		)

		if err := harness.Store.AddRoom(ctx, newPersistenceRoom(testfixtures.WithRoomID("r1"))); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for id, got %v", err)
		}
		if err := harness.Store.AddRoom(ctx, newPersistenceRoom(testfixtures.WithRoomCode("RM101"))); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for code, got %v", err)
		}

		moved := newPersistenceRoom(testfixtures.WithRoomID("r2"), testfixtures.WithRoomCode("RM101"))
		if err := harness.Store.UpdateRoom(ctx, moved); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate when stealing a code, got %v", err)
		}
	})

	t.Run("reports missing rooms", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewStoreHarness(t)

		if err := harness.Store.UpdateRoom(ctx, newPersistenceRoom()); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := harness.Store.RemoveRoom(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestBookingRepository(t *testing.T) {
	t.Parallel()

	t.Run("returns clones that callers cannot mutate", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		booking := newPersistenceBooking(
			testfixtures.WithBookingID("b1"),
			testfixtures.WithGuests(testfixtures.NewGuest(testfixtures.WithGuestName("Original"))),
		)
		harness := testfixtures.NewStoreHarness(t).Bookings(booking)

		fetched, err := harness.Store.GetBooking(ctx, "b1")
		if err != nil {
			t.Fatalf("GetBooking failed: %v", err)
		}
		fetched.GuestList[0].Name = "Mutated"
		fetched.RoomStays[0].BookingStatus = persistence.BookingCancelled

		again, err := harness.Store.GetBooking(ctx, "b1")
		if err != nil {
			t.Fatalf("GetBooking failed: %v", err)
		}
		if again.GuestList[0].Name != "Original" || again.RoomStays[0].BookingStatus != persistence.BookingConfirmed {
			t.Fatalf("store state leaked through a returned value: %#v", again)
		}
	})

	t.Run("replaces nested collections on update", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		booking := newPersistenceBooking(
			testfixtures.WithBookingID("b1"),
			testfixtures.WithRoomStays(
				persistence.RoomStay{RoomNumber: "RM101", BookingStatus: persistence.BookingConfirmed},
				persistence.RoomStay{RoomNumber: "RM102", BookingStatus: persistence.BookingConfirmed},
			),
		)
		harness := testfixtures.NewStoreHarness(t).Bookings(booking)

		booking.RoomStays = []persistence.RoomStay{{RoomNumber: "RM201", BookingStatus: persistence.BookingCheckedIn}}
		if err := harness.Store.UpdateBooking(ctx, booking); err != nil {
			t.Fatalf("UpdateBooking failed: %v", err)
		}

		fetched, err := harness.Store.BookingByBookingID(ctx, "b1")
		if err != nil {
			t.Fatalf("BookingByBookingID failed: %v", err)
		}
		if len(fetched.RoomStays) != 1 || fetched.RoomStays[0].RoomNumber != "RM201" {
			t.Fatalf("expected full replacement, got %#v", fetched.RoomStays)
		}
	})

	t.Run("keeps insertion order and removes by exact email", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewStoreHarness(t).Bookings(
			newPersistenceBooking(testfixtures.WithBookingID("b1"), testfixtures.WithBookingEmail("john@example.com")),
			newPersistenceBooking(testfixtures.WithBookingID("b2"), testfixtures.WithBookingEmail("lisa@example.com")),
			newPersistenceBooking(testfixtures.WithBookingID("b3"), testfixtures.WithBookingEmail("John@Example.com")),
		)

		removed, err := harness.Store.RemoveBookingsByEmail(ctx, "john@example.com")
		if err != nil {
			t.Fatalf("RemoveBookingsByEmail failed: %v", err)
		}
		if removed != 1 {
			t.Fatalf("expected only the exact email to be removed, got %d", removed)
		}

		listed, err := harness.Store.ListBookings(ctx)
		if err != nil {
			t.Fatalf("ListBookings failed: %v", err)
		}
		if len(listed) != 2 || listed[0].ID != "b2" || listed[1].ID != "b3" {
			t.Fatalf("unexpected remaining bookings: %#v", listed)
		}

		if _, err := harness.Store.RemoveBookingsByEmail(ctx, "nobody@example.com"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects duplicate booking ids and missing updates", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewStoreHarness(t).Bookings(newPersistenceBooking(testfixtures.WithBookingID("b1")))

		if err := harness.Store.AddBooking(ctx, newPersistenceBooking(testfixtures.WithBookingID("b1"))); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
		if err := harness.Store.UpdateBooking(ctx, newPersistenceBooking(testfixtures.WithBookingID("ghost"))); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := harness.Store.RemoveBooking(ctx, "ghost"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRoleRepository(t *testing.T) {
	t.Parallel()

	t.Run("stores membership once and derives both directions", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		manager := testfixtures.NewRole("Manager")
		cleaner := testfixtures.NewRole("Cleaner")
		alice := testfixtures.NewUser(testfixtures.WithUserID("alice"))
		bob := testfixtures.NewUser(testfixtures.WithUserID("bob"))
		harness := testfixtures.NewStoreHarness(t).Roles(manager, cleaner).Users(alice, bob)

		for _, userID := range []string{"alice", "bob"} {
			if err := harness.Store.AssignUserToRole(ctx, manager.ID, userID); err != nil {
				t.Fatalf("AssignUserToRole failed: %v", err)
			}
		}
		if err := harness.Store.AssignUserToRole(ctx, cleaner.ID, "bob"); err != nil {
			t.Fatalf("AssignUserToRole failed: %v", err)
		}

		members, err := harness.Store.RoleMembers(ctx, manager.ID)
		if err != nil {
			t.Fatalf("RoleMembers failed: %v", err)
		}
		if len(members) != 1 || members[0].ID != "alice" {
			t.Fatalf("expected bob to move out of Manager, got %#v", members)
		}

		role, err := harness.Store.RoleOfUser(ctx, "bob")
		if err != nil {
			t.Fatalf("RoleOfUser failed: %v", err)
		}
		if role.ID != cleaner.ID {
			t.Fatalf("expected bob to hold Cleaner, got %s", role.Name)
		}

		if err := harness.Store.RemoveUserFromRole(ctx, manager.ID, "bob"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for a role bob no longer holds, got %v", err)
		}
	})

	t.Run("removing a role drops its assignments", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		role := testfixtures.NewRole("")
		user := testfixtures.NewUser()
		harness := testfixtures.NewStoreHarness(t).Roles(role).Users(user)

		if err := harness.Store.AssignUserToRole(ctx, role.ID, user.ID); err != nil {
			t.Fatalf("AssignUserToRole failed: %v", err)
		}
		if err := harness.Store.RemoveRole(ctx, role.ID); err != nil {
			t.Fatalf("RemoveRole failed: %v", err)
		}
		if _, err := harness.Store.RoleOfUser(ctx, user.ID); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after role removal, got %v", err)
		}
	})

	t.Run("permission matrices are cloned", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		role := testfixtures.NewRole("Viewer")
		harness := testfixtures.NewStoreHarness(t).Roles(role)

		fetched, err := harness.Store.RoleByName(ctx, "viewer")
		if err != nil {
			t.Fatalf("RoleByName failed: %v", err)
		}
		fetched.Permissions[persistence.ModuleBookingManagement][persistence.ActionDelete] = true

		again, err := harness.Store.GetRole(ctx, role.ID)
		if err != nil {
			t.Fatalf("GetRole failed: %v", err)
		}
		if again.Permissions.Allows(persistence.ModuleBookingManagement, persistence.ActionDelete) {
			t.Fatal("permission change leaked into the store")
		}
	})
}

func TestUserRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewStoreHarness(t).Users(
		testfixtures.NewUser(testfixtures.WithUserID("u1"), testfixtures.WithUserEmail("admin@hotel.com")),
	)

	dup := testfixtures.NewUser(testfixtures.WithUserEmail("ADMIN@hotel.com"))
	if err := harness.Store.AddUser(ctx, dup); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	fetched, err := harness.Store.UserByEmail(ctx, " Admin@Hotel.com ")
	if err != nil {
		t.Fatalf("UserByEmail failed: %v", err)
	}
	if fetched.ID != "u1" {
		t.Fatalf("expected u1, got %#v", fetched)
	}
}

func TestApprovalRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewStoreHarness(t)
	for _, id := range []string{"PA1", "PA2"} {
		if err := harness.Store.AddPendingApproval(ctx, persistence.PendingApproval{ID: id, Status: persistence.ApprovalPending}); err != nil {
			t.Fatalf("AddPendingApproval failed: %v", err)
		}
	}

	if err := harness.Store.RemovePendingApproval(ctx, "PA1"); err != nil {
		t.Fatalf("RemovePendingApproval failed: %v", err)
	}
	listed, err := harness.Store.ListPendingApprovals(ctx)
	if err != nil {
		t.Fatalf("ListPendingApprovals failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "PA2" {
		t.Fatalf("unexpected approvals: %#v", listed)
	}
}

func TestRevisionAndSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewStoreHarness(t)
	start := harness.Store.Revision()

	harness.Rooms(newPersistenceRoom(testfixtures.WithRoomCode("RM101")))
	harness.Bookings(newPersistenceBooking(testfixtures.WithBookingID("b1")))

	if err := harness.Store.RemoveBooking(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing booking")
	}

	if got := harness.Store.Revision(); got != start+2 {
		t.Fatalf("expected revision %d, got %d", start+2, got)
	}

	snap, err := harness.Store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.Revision != start+2 || len(snap.Rooms) != 1 || len(snap.Customers) != 1 {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}
