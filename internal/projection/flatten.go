package projection

import (
	"slices"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
)

const unassignedRoom = "unassigned"

// FlatRow is one room stay of a booking, the unit shown on booking lists.
type FlatRow struct {
	RowID         string
	RoomNumber    string
	BookingStatus persistence.BookingStatus
	Booking       persistence.Customer
}

// RowID builds the list row identifier for a booking's stay in roomNumber.
func RowID(customerID, roomNumber string) string {
	if roomNumber == "" {
		roomNumber = unassignedRoom
	}
	return customerID + "-" + roomNumber
}

// FlattenByRoomStay expands every booking into one row per room stay.
// Bookings without stays produce no rows.
func FlattenByRoomStay(customers []persistence.Customer) []FlatRow {
	var rows []FlatRow
	for _, customer := range customers {
		for _, stay := range customer.RoomStays {
			rows = append(rows, FlatRow{
				RowID:         RowID(customer.ID, stay.RoomNumber),
				RoomNumber:    stay.RoomNumber,
				BookingStatus: stay.BookingStatus,
				Booking:       customer,
			})
		}
	}
	return rows
}

// RecentCheckIns lists Checked-In stays, newest check-in first, capped at
// limit rows. A non-positive limit returns every row.
func RecentCheckIns(customers []persistence.Customer, limit int) []FlatRow {
	var rows []FlatRow
	for _, row := range FlattenByRoomStay(customers) {
		if row.BookingStatus == persistence.BookingCheckedIn {
			rows = append(rows, row)
		}
	}

	slices.SortStableFunc(rows, func(a, b FlatRow) int {
		return compareDates(b.Booking.CheckInDate, a.Booking.CheckInDate)
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// TodaysCheckOuts lists every stay of bookings whose check-out date is today.
func TodaysCheckOuts(customers []persistence.Customer, today string) []FlatRow {
	var due []persistence.Customer
	for _, customer := range customers {
		if customer.CheckOutDate == today {
			due = append(due, customer)
		}
	}
	return FlattenByRoomStay(due)
}

// compareDates orders stored dates chronologically. Unparsable values sort
// before every valid date.
func compareDates(a, b string) int {
	ta, okA := dates.Parse(a)
	tb, okB := dates.Parse(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return ta.Compare(tb)
}
