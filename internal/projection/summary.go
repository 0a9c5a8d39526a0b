package projection

import (
	"github.com/shopspring/decimal"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
)

// Completeness is the registration indicator shown next to a booking row.
type Completeness int

const (
	// CompletenessHidden means no indicator is shown (cancelled stays).
	CompletenessHidden Completeness = iota
	CompletenessComplete
	CompletenessIncomplete
)

// GuestComplete reports whether a guest has passport, occupation and
// current address on file.
func GuestComplete(guest persistence.Guest) bool {
	return guest.PassportID != "" && guest.Occupation != "" && guest.CurrentAddress != ""
}

// CustomerComplete reports whether the main booker's own registration is
// complete, ignoring the guests.
func CustomerComplete(customer persistence.Customer) bool {
	return customer.PassportID != "" && customer.Occupation != "" && customer.CurrentAddress != ""
}

// BookingComplete reports whether the booking as a whole is complete: the
// booker and every guest.
func BookingComplete(customer persistence.Customer) bool {
	if !CustomerComplete(customer) {
		return false
	}
	for _, guest := range customer.GuestList {
		if !GuestComplete(guest) {
			return false
		}
	}
	return true
}

// DisplayComplete decides the indicator for one stay. Checked-In and
// Checked-Out stays always show as complete.
func DisplayComplete(customer persistence.Customer, status persistence.BookingStatus) Completeness {
	switch status {
	case persistence.BookingCancelled:
		return CompletenessHidden
	case persistence.BookingCheckedIn, persistence.BookingCheckedOut:
		return CompletenessComplete
	}
	if BookingComplete(customer) {
		return CompletenessComplete
	}
	return CompletenessIncomplete
}

// Stats are the dashboard counters.
type Stats struct {
	TotalRooms      int
	AvailableRooms  int
	OccupiedRooms   int
	TodaysCheckIns  int
	TodaysCheckOuts int
}

// DashboardStats counts rooms by housekeeping status and bookings arriving
// or leaving today.
func DashboardStats(rooms []persistence.Room, customers []persistence.Customer, today string) Stats {
	stats := Stats{TotalRooms: len(rooms)}
	for _, room := range rooms {
		switch room.Status {
		case persistence.RoomAvailable:
			stats.AvailableRooms++
		case persistence.RoomOccupied:
			stats.OccupiedRooms++
		}
	}
	for _, customer := range customers {
		if customer.CheckInDate == today {
			stats.TodaysCheckIns++
		}
		if customer.CheckOutDate == today {
			stats.TodaysCheckOuts++
		}
	}
	return stats
}

// StayNights is the number of nights billed for a stay.
func StayNights(checkIn, checkOut string) int {
	return dates.Nights(checkIn, checkOut)
}

// QuoteTotal sums the nightly prices of rooms and multiplies by nights.
func QuoteTotal(rooms []persistence.Room, nights int) decimal.Decimal {
	total := decimal.Zero
	for _, room := range rooms {
		total = total.Add(room.Price)
	}
	return total.Mul(decimal.NewFromInt(int64(nights)))
}
