package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/persistence/memory"
	"github.com/example/frontdesk/internal/projection"
)

var seedNow = time.Date(2024, 8, 1, 10, 30, 0, 0, time.UTC)

func TestBuildIsDeterministic(t *testing.T) {
	assert.Equal(t, Build(seedNow), Build(seedNow))
}

func TestBuildInventory(t *testing.T) {
	data := Build(seedNow)

	require.Len(t, data.Rooms, TotalRooms)
	assert.Equal(t, "RM101", data.Rooms[0].RoomCode)
	assert.Equal(t, "RM302", data.Rooms[9].RoomCode)
	assert.Equal(t, "RM303", data.Rooms[10].RoomCode)
	assert.Equal(t, "3rd Floor", data.Rooms[10].Floor)
	assert.Equal(t, "Last maintenance on 2024-01-15", data.Rooms[10].InternalNotes)

	codes := make(map[string]struct{})
	for _, room := range data.Rooms {
		_, dup := codes[room.RoomCode]
		require.False(t, dup, "duplicate room code %s", room.RoomCode)
		codes[room.RoomCode] = struct{}{}
		assert.False(t, room.Price.IsNegative(), "negative price on %s", room.RoomCode)
	}
}

func TestBuildBookings(t *testing.T) {
	data := Build(seedNow)
	today := dates.Format(seedNow)

	require.Len(t, data.Bookings, 12+5+1+2+7+5)

	occupants := make(map[string]string)
	for _, row := range projection.FlattenByRoomStay(data.Bookings) {
		if row.BookingStatus == persistence.BookingCheckedIn {
			require.NotContains(t, occupants, row.RoomNumber, "two guests checked into %s", row.RoomNumber)
			occupants[row.RoomNumber] = row.Booking.FullName
		}
	}
	assert.Equal(t, map[string]string{
		"RM101": "John Smith",
		"RM104": "Lisa Wong",
		"RM202": "Robert Brown",
		"RM203": "Emily White",
		"RM301": "Michael Johnson",
		"RM302": "Sarah Connor",
		"RM105": "Katie Jones",
		"RM401": "David Davis",
	}, occupants)

	customers := projection.RollUpCustomers(data.Bookings)
	var smith projection.UniqueCustomer
	for _, c := range customers {
		if c.Email == "j.smith@example.com" {
			smith = c
		}
	}
	assert.Equal(t, 12, smith.BookingCount)
	assert.Equal(t, dates.AddDays(today, -2), smith.Latest.CheckInDate)

	davis := data.Bookings[len(data.Bookings)-1]
	require.Len(t, davis.GuestList, 3)
	assert.Equal(t, today, davis.GuestList[0].DateOfArrival)
	assert.Equal(t, "Canadian", davis.GuestList[2].Nationality)
}

func TestBuildAccounts(t *testing.T) {
	data := Build(seedNow)

	require.Len(t, data.Users, TotalUsers)
	require.Len(t, data.Assignments, TotalUsers)
	require.Len(t, data.Roles, 5)
	require.Len(t, data.Approvals, 3)

	assert.Equal(t, "2024-08-01 09:41", data.Users[0].LastLogin)
	assert.Equal(t, persistence.UserPendingInvite, data.Users[2].Status)
	assert.Equal(t, "Never", data.Users[2].LastLogin)

	for _, role := range data.Roles {
		for module, actions := range role.Permissions {
			for action := range actions {
				assert.True(t, persistence.Supports(module, action), "%s grants unsupported %s.%s", role.Name, module, action)
			}
		}
	}

	byName := make(map[string]persistence.Role)
	for _, role := range data.Roles {
		byName[role.Name] = role
	}
	cleaner := byName["Cleaner"].Permissions
	assert.True(t, cleaner.Allows(persistence.ModuleRoomManagement, persistence.ActionEditStatus))
	assert.False(t, cleaner.Allows(persistence.ModuleBookingManagement, persistence.ActionView))
	assert.False(t, byName["Receptionist"].Permissions.Allows(persistence.ModuleBookingManagement, persistence.ActionDelete))

	for _, approval := range data.Approvals {
		assert.Contains(t, byName, approval.RequestedRole)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	data := Build(seedNow)

	require.NoError(t, Load(ctx, store, data))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Rooms, TotalRooms)
	assert.Len(t, snap.Customers, len(data.Bookings))

	directory := projection.BuildRoomDirectory(snap.Rooms)
	assert.Equal(t, projection.UnknownRoom, directory.Label("RM401"))

	admin, err := store.RoleOfUser(ctx, "U100")
	require.NoError(t, err)
	assert.Equal(t, "Super Admin", admin.Name)

	pending, err := store.ListPendingApprovals(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	err = Load(ctx, store, data)
	assert.ErrorIs(t, err, persistence.ErrDuplicate)
}
