package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
)

var (
	roomCounter    uint64
	bookingCounter uint64
	guestCounter   uint64
	userCounter    uint64
	roleCounter    uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns ReferenceTime as an ISO date string.
func ReferenceDate() string {
	return dates.Format(referenceTime)
}

// ----------------------------- Room fixtures -----------------------------

// RoomFixture is a deterministic room record.
type RoomFixture struct {
	room persistence.Room
}

// RoomOption configures the generated room fixture.
type RoomOption func(*persistence.Room)

// NewRoomFixture returns an available Standard room with a unique code.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	idx := atomic.AddUint64(&roomCounter, 1)
	room := persistence.Room{
		ID:           fmt.Sprintf("room-%03d", idx),
		RoomCode:     fmt.Sprintf("RM%d", 900+idx),
		Floor:        "9th Floor",
		FloorAndView: "9th Floor - City View",
		Type:         persistence.RoomStandard,
		BedType:      persistence.BedKing,
		Price:        decimal.NewFromInt(1000),
		Status:       persistence.RoomAvailable,
		MaxOccupancy: 2,
	}
	for _, opt := range opts {
		opt(&room)
	}
	return RoomFixture{room: room}
}

// WithRoomID overrides the generated room ID.
func WithRoomID(id string) RoomOption {
	return func(r *persistence.Room) { r.ID = id }
}

// WithRoomCode overrides the generated room code.
func WithRoomCode(code string) RoomOption {
	return func(r *persistence.Room) { r.RoomCode = code }
}

// WithRoomFloor sets the floor label.
func WithRoomFloor(floor string) RoomOption {
	return func(r *persistence.Room) { r.Floor = floor }
}

// WithRoomType sets the room type.
func WithRoomType(roomType persistence.RoomType) RoomOption {
	return func(r *persistence.Room) { r.Type = roomType }
}

// WithRoomStatus sets the housekeeping status.
func WithRoomStatus(status persistence.RoomStatus) RoomOption {
	return func(r *persistence.Room) { r.Status = status }
}

// WithRoomPrice sets the nightly price.
func WithRoomPrice(price int64) RoomOption {
	return func(r *persistence.Room) { r.Price = decimal.NewFromInt(price) }
}

// Persistence returns the fixture as a persistence.Room value.
func (f RoomFixture) Persistence() persistence.Room {
	return f.room
}

// ---------------------------- Booking fixtures ----------------------------

// BookingFixture is a deterministic booking record with one Confirmed stay.
type BookingFixture struct {
	customer persistence.Customer
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*persistence.Customer)

// NewBookingFixture returns a Confirmed booking for room RM101 spanning two
// nights from ReferenceDate.
func NewBookingFixture(opts ...BookingOption) BookingFixture {
	idx := atomic.AddUint64(&bookingCounter, 1)
	checkIn := ReferenceDate()
	customer := persistence.Customer{
		ID:             fmt.Sprintf("booking-%03d", idx),
		BookingID:      fmt.Sprintf("BK%03d", idx),
		FullName:       fmt.Sprintf("Guest %03d", idx),
		Email:          fmt.Sprintf("guest%03d@example.com", idx),
		PassportID:     fmt.Sprintf("P%06d", idx),
		Nationality:    "British",
		Gender:         persistence.GenderFemale,
		DOB:            "1990-01-01",
		Phone:          "+66 81 000 0000",
		GuestType:      persistence.GuestAdult,
		CustomerStatus: persistence.CustomerRegular,
		ActivityStatus: persistence.ActivityActive,
		CurrentAddress: "Bangkok, Thailand",
		CheckInDate:    checkIn,
		CheckOutDate:   dates.AddDays(checkIn, 2),
		RoomStays: []persistence.RoomStay{
			{RoomNumber: "RM101", BookingStatus: persistence.BookingConfirmed},
		},
		PaymentStatus: persistence.PaymentPending,
		EmailStatus:   persistence.EmailNotSent,
		Adults:        1,
		TotalPrice:    decimal.NewFromInt(2000),
		VisaType:      "Tourist Visa (TR)",
		TM30Status:    persistence.TM30Pending,
		Occupation:    "Engineer",
	}
	for _, opt := range opts {
		opt(&customer)
	}
	return BookingFixture{customer: customer}
}

// WithBookingID overrides both the record ID and the booking reference.
func WithBookingID(id string) BookingOption {
	return func(c *persistence.Customer) {
		c.ID = id
		c.BookingID = id
	}
}

// WithBookingName sets the main booker's name.
func WithBookingName(name string) BookingOption {
	return func(c *persistence.Customer) { c.FullName = name }
}

// WithBookingEmail sets the booker email used to link bookings.
func WithBookingEmail(email string) BookingOption {
	return func(c *persistence.Customer) { c.Email = email }
}

// WithBookingPassport sets the booker passport number.
func WithBookingPassport(passport string) BookingOption {
	return func(c *persistence.Customer) { c.PassportID = passport }
}

// WithBookingDates sets the check-in and check-out dates.
func WithBookingDates(checkIn, checkOut string) BookingOption {
	return func(c *persistence.Customer) {
		c.CheckInDate = checkIn
		c.CheckOutDate = checkOut
	}
}

// WithRoomStays replaces the booking's stays.
func WithRoomStays(stays ...persistence.RoomStay) BookingOption {
	return func(c *persistence.Customer) {
		c.RoomStays = append([]persistence.RoomStay(nil), stays...)
	}
}

// WithStay is shorthand for a single stay in room code with status.
func WithStay(code string, status persistence.BookingStatus) BookingOption {
	return WithRoomStays(persistence.RoomStay{RoomNumber: code, BookingStatus: status})
}

// WithGuests replaces the accompanying guest list.
func WithGuests(guests ...persistence.Guest) BookingOption {
	return func(c *persistence.Customer) {
		c.GuestList = append([]persistence.Guest(nil), guests...)
	}
}

// WithBookingRegistration sets the three fields that make a registration
// complete.
func WithBookingRegistration(passport, occupation, address string) BookingOption {
	return func(c *persistence.Customer) {
		c.PassportID = passport
		c.Occupation = occupation
		c.CurrentAddress = address
	}
}

// Persistence returns the fixture as a persistence.Customer value.
func (f BookingFixture) Persistence() persistence.Customer {
	return f.customer
}

// ----------------------------- Guest fixtures -----------------------------

// GuestOption configures the generated guest.
type GuestOption func(*persistence.Guest)

// NewGuest returns a complete adult guest record.
func NewGuest(opts ...GuestOption) persistence.Guest {
	idx := atomic.AddUint64(&guestCounter, 1)
	guest := persistence.Guest{
		ID:             fmt.Sprintf("guest-%03d", idx),
		Name:           fmt.Sprintf("Companion %03d", idx),
		PassportID:     fmt.Sprintf("G%06d", idx),
		Nationality:    "German",
		Gender:         persistence.GenderMale,
		GuestType:      persistence.GuestAdult,
		Occupation:     "Teacher",
		CurrentAddress: "Berlin, Germany",
		Relationship:   "Guest",
	}
	for _, opt := range opts {
		opt(&guest)
	}
	return guest
}

// WithGuestID overrides the generated guest ID.
func WithGuestID(id string) GuestOption {
	return func(g *persistence.Guest) { g.ID = id }
}

// WithGuestName sets the guest's full name.
func WithGuestName(name string) GuestOption {
	return func(g *persistence.Guest) { g.Name = name }
}

// WithGuestPassport sets the guest passport number.
func WithGuestPassport(passport string) GuestOption {
	return func(g *persistence.Guest) { g.PassportID = passport }
}

// WithGuestType sets Adult, Child or Infant.
func WithGuestType(guestType persistence.GuestType) GuestOption {
	return func(g *persistence.Guest) { g.GuestType = guestType }
}

// ----------------------------- User fixtures -----------------------------

// UserOption configures the generated user.
type UserOption func(*persistence.User)

// NewUser returns an active administrative account.
func NewUser(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	user := persistence.User{
		ID:        fmt.Sprintf("user-%03d", idx),
		Name:      fmt.Sprintf("Staff %03d", idx),
		Email:     fmt.Sprintf("staff%03d@hotel.com", idx),
		Status:    persistence.UserActive,
		LastLogin: ReferenceDate(),
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(u *persistence.User) { u.ID = id }
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(u *persistence.User) { u.Email = email }
}

// WithUserName overrides the generated display name.
func WithUserName(name string) UserOption {
	return func(u *persistence.User) { u.Name = name }
}

// WithUserStatus sets the account status.
func WithUserStatus(status persistence.UserStatus) UserOption {
	return func(u *persistence.User) { u.Status = status }
}

// WithUserPasswordHash sets the stored password hash.
func WithUserPasswordHash(hash string) UserOption {
	return func(u *persistence.User) { u.PasswordHash = hash }
}

// ----------------------------- Role fixtures -----------------------------

// NewRole returns a role that may only view bookings.
func NewRole(name string) persistence.Role {
	idx := atomic.AddUint64(&roleCounter, 1)
	if name == "" {
		name = fmt.Sprintf("Role %03d", idx)
	}
	return persistence.Role{
		ID:          fmt.Sprintf("role-%03d", idx),
		Name:        name,
		Description: "fixture role",
		Permissions: persistence.Permissions{
			persistence.ModuleBookingManagement: {persistence.ActionView: true},
		},
	}
}
