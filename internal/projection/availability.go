package projection

import (
	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
)

// AvailabilityQuery describes a request for rooms that can be offered.
type AvailabilityQuery struct {
	Rooms     []persistence.Room
	Customers []persistence.Customer
	// CheckIn and CheckOut bound the requested stay. When both are empty,
	// any active claim on a room blocks it.
	CheckIn  string
	CheckOut string
	// EditingBookingID names the booking being edited, by record ID or
	// booking reference. Its own rooms are never treated as claimed.
	EditingBookingID string
	// RequireAvailableStatus drops rooms whose housekeeping status is not
	// Available before claims are considered.
	RequireAvailableStatus bool
}

// Claim records an active stay that blocks a room for the queried window.
type Claim struct {
	RoomCode      string
	WithBookingID string
	Status        persistence.BookingStatus
	CheckIn       string
	CheckOut      string
}

// DetectClaims lists the active stays of other bookings that overlap the
// query window.
func DetectClaims(q AvailabilityQuery) []Claim {
	windowed := q.CheckIn != "" || q.CheckOut != ""

	var claims []Claim
	for _, customer := range q.Customers {
		if q.editing(customer) {
			continue
		}
		if windowed && !dates.Overlaps(q.CheckIn, q.CheckOut, customer.CheckInDate, customer.CheckOutDate) {
			continue
		}
		for _, stay := range customer.RoomStays {
			if !stay.BookingStatus.Active() || stay.RoomNumber == "" {
				continue
			}
			claims = append(claims, Claim{
				RoomCode:      stay.RoomNumber,
				WithBookingID: customer.BookingID,
				Status:        stay.BookingStatus,
				CheckIn:       customer.CheckInDate,
				CheckOut:      customer.CheckOutDate,
			})
		}
	}
	return claims
}

// AvailableRooms returns the candidate rooms that no other booking claims
// for the query window, in input order. Rooms the booking being edited
// actively holds stay in the result even when their status is no longer
// Available; its cancelled or finished stays exempt nothing.
func AvailableRooms(q AvailabilityQuery) []persistence.Room {
	claimed := make(map[string]struct{})
	for _, claim := range DetectClaims(q) {
		claimed[claim.RoomCode] = struct{}{}
	}

	own := make(map[string]struct{})
	for _, customer := range q.Customers {
		if !q.editing(customer) {
			continue
		}
		for _, stay := range customer.RoomStays {
			if stay.BookingStatus.Active() {
				own[stay.RoomNumber] = struct{}{}
			}
		}
	}

	var rooms []persistence.Room
	for _, room := range q.Rooms {
		_, held := own[room.RoomCode]
		if held {
			rooms = append(rooms, room)
			continue
		}
		if q.RequireAvailableStatus && room.Status != persistence.RoomAvailable {
			continue
		}
		if _, ok := claimed[room.RoomCode]; ok {
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms
}

// editing matches the booking under edit by record ID or booking reference.
func (q AvailabilityQuery) editing(customer persistence.Customer) bool {
	if q.EditingBookingID == "" {
		return false
	}
	return customer.ID == q.EditingBookingID || customer.BookingID == q.EditingBookingID
}

// IsAvailable reports whether code is offered by AvailableRooms for q.
func IsAvailable(q AvailabilityQuery, code string) bool {
	for _, room := range AvailableRooms(q) {
		if room.RoomCode == code {
			return true
		}
	}
	return false
}
