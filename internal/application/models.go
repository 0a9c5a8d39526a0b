package application

import (
	"github.com/shopspring/decimal"

	"github.com/example/frontdesk/internal/persistence"
)

// StayWindow is the requested check-in and check-out pair, as ISO dates.
type StayWindow struct {
	CheckIn  string
	CheckOut string
}

// AccompanyingGuest is a traveler added on the new booking form.
type AccompanyingGuest struct {
	Name string
	Type persistence.GuestType
}

// CreateBookingInput captures the new booking form.
type CreateBookingInput struct {
	Window        StayWindow
	RoomCodes     []string
	BookerName    string
	BookerEmail   string
	Guests        []AccompanyingGuest
	PaymentStatus persistence.PaymentStatus
	SendEmail     bool
}

// CreateBookingResult returns the stored booking together with the list row
// the bookings screen should jump to.
type CreateBookingResult struct {
	Booking persistence.Customer
	RowID   string
}

// RoomInput captures the new room form. RoomCode is the number without the
// "RM" prefix.
type RoomInput struct {
	RoomCode     string
	Floor        string
	Type         persistence.RoomType
	MaxOccupancy int
	BedType      persistence.BedType
	Price        decimal.Decimal
	Description  string
}

// RoomDetails is a room together with the guest currently holding it.
type RoomDetails struct {
	Room     persistence.Room
	Label    string
	Guest    persistence.Customer
	Occupied bool
}

// InviteUserInput captures the invite form.
type InviteUserInput struct {
	Name   string
	Email  string
	RoleID string
}

// RoleInput captures the create role form.
type RoleInput struct {
	Name        string
	Description string
	Permissions persistence.Permissions
}

// PasswordChange carries a password update. Current is ignored when an
// invited account sets its first password.
type PasswordChange struct {
	Current string
	New     string
	Confirm string
}
