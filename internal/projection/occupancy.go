package projection

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/example/frontdesk/internal/persistence"
)

// UnknownRoom is the label rendered for a room code with no matching room.
const UnknownRoom = "unknown room"

// OccupancyIndex maps a room code to the booking holding a Checked-In stay
// in it.
type OccupancyIndex map[string]persistence.Customer

// BuildOccupancyIndex scans every stay. When two bookings claim the same
// room as Checked-In, the later booking wins.
func BuildOccupancyIndex(customers []persistence.Customer) OccupancyIndex {
	index := make(OccupancyIndex)
	for _, customer := range customers {
		for _, stay := range customer.RoomStays {
			if stay.BookingStatus == persistence.BookingCheckedIn {
				index[stay.RoomNumber] = customer
			}
		}
	}
	return index
}

// Guest returns the booking currently checked into code.
func (o OccupancyIndex) Guest(code string) (persistence.Customer, bool) {
	customer, ok := o[code]
	return customer, ok
}

// RoomDirectory resolves room codes to rooms.
type RoomDirectory map[string]persistence.Room

// BuildRoomDirectory indexes rooms by code.
func BuildRoomDirectory(rooms []persistence.Room) RoomDirectory {
	dir := make(RoomDirectory, len(rooms))
	for _, room := range rooms {
		dir[room.RoomCode] = room
	}
	return dir
}

// Lookup returns the room for code.
func (d RoomDirectory) Lookup(code string) (persistence.Room, bool) {
	room, ok := d[code]
	return room, ok
}

// Label renders a room code for display. Dangling codes render as
// UnknownRoom.
func (d RoomDirectory) Label(code string) string {
	room, ok := d[code]
	if !ok {
		return UnknownRoom
	}
	return room.RoomCode + " (" + string(room.Type) + ")"
}

// FloorOptions returns the distinct floors ordered by their leading number.
func FloorOptions(rooms []persistence.Room) []string {
	seen := make(map[string]struct{})
	var floors []string
	for _, room := range rooms {
		if _, ok := seen[room.Floor]; ok {
			continue
		}
		seen[room.Floor] = struct{}{}
		floors = append(floors, room.Floor)
	}
	slices.SortStableFunc(floors, func(a, b string) int {
		return leadingNumber(a) - leadingNumber(b)
	})
	return floors
}

func leadingNumber(s string) int {
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
