package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/projection"
	"github.com/example/frontdesk/internal/reference"
)

// BookingService orchestrates validation, availability and persistence for
// bookings and their room stays.
type BookingService struct {
	store       BookingStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(store BookingStore, idGenerator func() string, now func() time.Time) *BookingService {
	return NewBookingServiceWithLogger(store, idGenerator, now, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(store BookingStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = NewUUID
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{store: store, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// CreateBooking validates the new booking form, checks that every selected
// room is free for the stay and stores the booking with Confirmed stays.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (result CreateBookingResult, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateBooking",
		"check_in", input.Window.CheckIn,
		"check_out", input.Window.CheckOut,
		"room_count", len(input.RoomCodes),
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create booking", "booking created",
			"booking_id", result.Booking.BookingID, "row_id", result.RowID)
	}()

	codes := uniqueCodes(input.RoomCodes)
	if vErr := validateCreateBooking(input, codes); vErr.HasErrors() {
		err = vErr
		return
	}

	var snap persistence.Snapshot
	snap, err = s.store.Snapshot(ctx)
	if err != nil {
		return
	}

	directory := projection.BuildRoomDirectory(snap.Rooms)
	query := projection.AvailabilityQuery{
		Rooms:                  snap.Rooms,
		Customers:              snap.Customers,
		CheckIn:                input.Window.CheckIn,
		CheckOut:               input.Window.CheckOut,
		RequireAvailableStatus: true,
	}
	offered := projection.BuildRoomDirectory(projection.AvailableRooms(query))

	rooms := make([]persistence.Room, 0, len(codes))
	for _, code := range codes {
		room, ok := directory.Lookup(code)
		if !ok {
			err = fmt.Errorf("room %s: %w", code, ErrNotFound)
			return
		}
		if _, ok := offered.Lookup(code); !ok {
			err = fmt.Errorf("room %s: %w", code, ErrRoomUnavailable)
			return
		}
		rooms = append(rooms, room)
	}

	booking := s.newBooking(input, rooms)
	if err = mapStoreError(s.store.AddBooking(ctx, booking)); err != nil {
		return
	}

	result = CreateBookingResult{
		Booking: booking,
		RowID:   projection.RowID(booking.ID, rooms[0].RoomCode),
	}
	return
}

func (s *BookingService) newBooking(input CreateBookingInput, rooms []persistence.Room) persistence.Customer {
	id := s.idGenerator()
	window := input.Window

	stays := make([]persistence.RoomStay, len(rooms))
	for i, room := range rooms {
		stays[i] = persistence.RoomStay{RoomNumber: room.RoomCode, BookingStatus: persistence.BookingConfirmed}
	}

	guests := make([]persistence.Guest, 0, len(input.Guests))
	for _, companion := range input.Guests {
		guests = append(guests, persistence.Guest{
			ID:               s.idGenerator(),
			Name:             strings.TrimSpace(companion.Name),
			GuestType:        companion.Type,
			Gender:           persistence.GenderOther,
			DateOfArrival:    window.CheckIn,
			VisaType:         reference.DefaultVisaType,
			ExpireDateOfStay: window.CheckOut,
			Relationship:     "Guest",
		})
	}

	payment := input.PaymentStatus
	if payment == "" {
		payment = persistence.PaymentPending
	}
	emailStatus := persistence.EmailNotSent
	if input.SendEmail {
		emailStatus = persistence.EmailSent
	}

	booking := persistence.Customer{
		ID:               id,
		BookingID:        bookingReference(id),
		FullName:         strings.TrimSpace(input.BookerName),
		Email:            strings.TrimSpace(input.BookerEmail),
		Gender:           persistence.GenderOther,
		GuestType:        persistence.GuestAdult,
		CustomerStatus:   persistence.CustomerRegular,
		ActivityStatus:   persistence.ActivityActive,
		CheckInDate:      window.CheckIn,
		CheckOutDate:     window.CheckOut,
		RoomStays:        stays,
		PaymentStatus:    payment,
		EmailStatus:      emailStatus,
		GuestList:        guests,
		TotalPrice:       projection.QuoteTotal(rooms, projection.StayNights(window.CheckIn, window.CheckOut)),
		VisaType:         reference.DefaultVisaType,
		ExpireDateOfStay: window.CheckOut,
		Relationship:     "Guest",
		TM30Status:       persistence.TM30Pending,
	}
	recountParty(&booking)
	return booking
}

func validateCreateBooking(input CreateBookingInput, codes []string) *ValidationError {
	vErr := &ValidationError{}
	vErr.merge(checkStay(input.Window.CheckIn, input.Window.CheckOut))
	if len(codes) == 0 {
		vErr.add("rooms", "select at least one room")
	}
	if strings.TrimSpace(input.BookerName) == "" {
		vErr.add("fullName", "main booker name is required")
	}
	if input.BookerEmail != "" && !validEmail(input.BookerEmail) {
		vErr.add("email", "email address is invalid")
	}
	switch input.PaymentStatus {
	case "", persistence.PaymentPaid, persistence.PaymentPending, persistence.PaymentDepositPaid:
	default:
		vErr.add("paymentStatus", "unsupported payment status")
	}
	for i, guest := range input.Guests {
		switch guest.Type {
		case persistence.GuestAdult, persistence.GuestChild, persistence.GuestInfant:
		default:
			vErr.add(fmt.Sprintf("guests[%d].type", i), "unsupported guest type")
		}
	}
	return vErr
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		key := strings.ToUpper(code)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// Booking resolves a booking by record id or desk reference.
func (s *BookingService) Booking(ctx context.Context, ref string) (persistence.Customer, error) {
	if s == nil || s.store == nil {
		return persistence.Customer{}, fmt.Errorf("BookingService is not configured")
	}
	booking, err := s.store.GetBooking(ctx, ref)
	if err == nil {
		return booking, nil
	}
	booking, err = s.store.BookingByBookingID(ctx, ref)
	return booking, mapStoreError(err)
}

// UpdateBooking replaces a stored booking with next.
func (s *BookingService) UpdateBooking(ctx context.Context, next persistence.Customer) (booking persistence.Customer, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBooking", "booking_record_id", next.ID)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update booking", "booking updated")
	}()

	if _, err = s.store.GetBooking(ctx, next.ID); err != nil {
		err = mapStoreError(err)
		return
	}

	vErr := &ValidationError{}
	if strings.TrimSpace(next.FullName) == "" {
		vErr.add("fullName", "full name is required")
	}
	vErr.merge(checkStay(next.CheckInDate, next.CheckOutDate))
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if err = mapStoreError(s.store.UpdateBooking(ctx, next)); err != nil {
		return
	}
	booking = next
	return
}

// UpdateBookingField applies one committed field edit. personID selects the
// main booker (empty or the booking's own id) or one of its guests.
func (s *BookingService) UpdateBookingField(ctx context.Context, bookingID, personID, field, value string) (booking persistence.Customer, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBookingField",
		"booking_record_id", bookingID,
		"person_id", personID,
		"field", field,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update booking field", "booking field updated")
	}()

	var current persistence.Customer
	current, err = s.store.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	next, err := editPerson(current, personID, field, value)
	if err != nil {
		return
	}

	if err = mapStoreError(s.store.UpdateBooking(ctx, next)); err != nil {
		return
	}
	booking = next
	return
}

func editPerson(current persistence.Customer, personID, field, value string) (persistence.Customer, error) {
	next := current
	if personID == "" || personID == current.ID {
		if vErr := applyCustomerField(&next, field, value); vErr != nil {
			return current, vErr
		}
		return next, nil
	}

	next.GuestList = append([]persistence.Guest(nil), current.GuestList...)
	for i := range next.GuestList {
		if next.GuestList[i].ID != personID {
			continue
		}
		if vErr := applyGuestField(&next.GuestList[i], field, value); vErr != nil {
			return current, vErr
		}
		if field == "guestType" {
			recountParty(&next)
		}
		return next, nil
	}
	return current, fmt.Errorf("guest %s: %w", personID, ErrNotFound)
}

// DeleteBooking removes a booking and all of its stays.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("BookingService is not configured")
	}

	logger := s.loggerWith(ctx, "DeleteBooking", "booking_record_id", bookingID)
	err := mapStoreError(s.store.RemoveBooking(ctx, bookingID))
	logOutcome(ctx, logger, err, "failed to delete booking", "booking deleted")
	return err
}

// AvailableRoomsFor lists the rooms that can be offered for window. With a
// booking id the booking's own rooms stay selectable and its dates fill an
// empty window; without one only rooms marked Available are offered.
func (s *BookingService) AvailableRoomsFor(ctx context.Context, bookingID string, window StayWindow) (rooms []persistence.Room, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "AvailableRoomsFor", "booking_record_id", bookingID)
	defer func() {
		if err != nil {
			logOutcome(ctx, logger, err, "failed to list available rooms", "")
			return
		}
		logger.DebugContext(ctx, "available rooms listed", "result_count", len(rooms))
	}()

	var snap persistence.Snapshot
	snap, err = s.store.Snapshot(ctx)
	if err != nil {
		return
	}

	query := projection.AvailabilityQuery{
		Rooms:     snap.Rooms,
		Customers: snap.Customers,
		CheckIn:   window.CheckIn,
		CheckOut:  window.CheckOut,
	}
	if bookingID == "" {
		query.RequireAvailableStatus = true
	} else {
		var booking persistence.Customer
		booking, err = s.Booking(ctx, bookingID)
		if err != nil {
			return
		}
		query.EditingBookingID = booking.ID
		if window.CheckIn == "" && window.CheckOut == "" {
			query.CheckIn, query.CheckOut = booking.CheckInDate, booking.CheckOutDate
		}
	}

	rooms = projection.AvailableRooms(query)
	return
}

// ReassignRoom moves one stay of a booking from fromCode to toCode. An empty
// fromCode selects the first stay. The target room must be free for the
// booking's dates; a checked-in stay also moves the occupancy marker.
func (s *BookingService) ReassignRoom(ctx context.Context, bookingID, fromCode, toCode string) (booking persistence.Customer, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "ReassignRoom",
		"booking_record_id", bookingID,
		"from_room", fromCode,
		"to_room", toCode,
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to reassign room", "room reassigned")
	}()

	var current persistence.Customer
	current, err = s.store.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	idx := stayIndex(current, fromCode)
	if idx < 0 {
		err = fmt.Errorf("stay %s: %w", fromCode, ErrNotFound)
		return
	}
	stay := current.RoomStays[idx]
	if strings.EqualFold(stay.RoomNumber, toCode) {
		booking = current
		return
	}
	if stayIndex(current, toCode) >= 0 {
		err = fmt.Errorf("room %s already on booking: %w", toCode, ErrRoomUnavailable)
		return
	}

	var target persistence.Room
	target, err = s.store.RoomByCode(ctx, toCode)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	var snap persistence.Snapshot
	snap, err = s.store.Snapshot(ctx)
	if err != nil {
		return
	}
	query := projection.AvailabilityQuery{
		Rooms:            snap.Rooms,
		Customers:        snap.Customers,
		CheckIn:          current.CheckInDate,
		CheckOut:         current.CheckOutDate,
		EditingBookingID: current.ID,
	}
	if !projection.IsAvailable(query, target.RoomCode) {
		err = fmt.Errorf("room %s: %w", target.RoomCode, ErrRoomUnavailable)
		return
	}

	next := current
	next.RoomStays = append([]persistence.RoomStay(nil), current.RoomStays...)
	next.RoomStays[idx].RoomNumber = target.RoomCode
	if err = mapStoreError(s.store.UpdateBooking(ctx, next)); err != nil {
		return
	}

	if stay.BookingStatus == persistence.BookingCheckedIn {
		s.markRoom(ctx, logger, stay.RoomNumber, persistence.RoomCleaning)
		s.markRoom(ctx, logger, target.RoomCode, persistence.RoomOccupied)
	}
	booking = next
	return
}

// SetStayStatus changes the status of the stay in roomCode and keeps the
// room's housekeeping status in step: check-in occupies the room, check-out
// sends it to cleaning and cancelling releases it when no other checked-in
// stay holds it.
func (s *BookingService) SetStayStatus(ctx context.Context, bookingID, roomCode string, status persistence.BookingStatus) (booking persistence.Customer, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "SetStayStatus",
		"booking_record_id", bookingID,
		"room", roomCode,
		"status", string(status),
	)
	defer func() {
		logOutcome(ctx, logger, err, "failed to change stay status", "stay status changed")
	}()

	if !validBookingStatus(status) {
		err = fieldError("bookingStatus", "unsupported booking status")
		return
	}

	var current persistence.Customer
	current, err = s.store.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	idx := stayIndex(current, roomCode)
	if idx < 0 {
		err = fmt.Errorf("stay %s: %w", roomCode, ErrNotFound)
		return
	}
	previous := current.RoomStays[idx]
	if previous.BookingStatus == status {
		booking = current
		return
	}

	var snap persistence.Snapshot
	snap, err = s.store.Snapshot(ctx)
	if err != nil {
		return
	}

	if status.Active() && !previous.BookingStatus.Active() {
		claims := projection.DetectClaims(projection.AvailabilityQuery{
			Customers:        snap.Customers,
			CheckIn:          current.CheckInDate,
			CheckOut:         current.CheckOutDate,
			EditingBookingID: current.ID,
		})
		for _, claim := range claims {
			if strings.EqualFold(claim.RoomCode, previous.RoomNumber) {
				err = fmt.Errorf("room %s held by %s: %w", claim.RoomCode, claim.WithBookingID, ErrRoomUnavailable)
				return
			}
		}
	}

	next := current
	next.RoomStays = append([]persistence.RoomStay(nil), current.RoomStays...)
	next.RoomStays[idx].BookingStatus = status
	if err = mapStoreError(s.store.UpdateBooking(ctx, next)); err != nil {
		return
	}

	switch status {
	case persistence.BookingCheckedIn:
		s.markRoom(ctx, logger, previous.RoomNumber, persistence.RoomOccupied)
	case persistence.BookingCheckedOut:
		s.markRoom(ctx, logger, previous.RoomNumber, persistence.RoomCleaning)
	case persistence.BookingCancelled:
		if !checkedInElsewhere(snap.Customers, current.ID, previous.RoomNumber) {
			s.releaseRoom(ctx, logger, previous.RoomNumber)
		}
	}
	booking = next
	return
}

// SendConfirmation records that the confirmation email went to email.
func (s *BookingService) SendConfirmation(ctx context.Context, bookingID, email string) (booking persistence.Customer, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "SendConfirmation", "booking_record_id", bookingID)
	defer func() {
		logOutcome(ctx, logger, err, "failed to send confirmation", "confirmation sent")
	}()

	if !validEmail(email) {
		err = fieldError("email", "email address is invalid")
		return
	}

	var current persistence.Customer
	current, err = s.store.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	next := current
	next.Email = strings.TrimSpace(email)
	next.EmailStatus = persistence.EmailSent
	if err = mapStoreError(s.store.UpdateBooking(ctx, next)); err != nil {
		return
	}
	booking = next
	return
}

// markRoom updates the housekeeping status of the room with code. A stay
// pointing at a room that no longer exists is logged and skipped.
func (s *BookingService) markRoom(ctx context.Context, logger *slog.Logger, code string, status persistence.RoomStatus) {
	room, err := s.store.RoomByCode(ctx, code)
	if err != nil {
		logger.WarnContext(ctx, "stay references unknown room", "room", code, "error_kind", ErrorKind(mapStoreError(err)))
		return
	}
	if room.Status == status {
		return
	}
	room.Status = status
	if err := s.store.UpdateRoom(ctx, room); err != nil {
		logger.ErrorContext(ctx, "failed to update room status", "room", code, "error", err)
	}
}

func (s *BookingService) releaseRoom(ctx context.Context, logger *slog.Logger, code string) {
	room, err := s.store.RoomByCode(ctx, code)
	if err != nil || room.Status != persistence.RoomOccupied {
		return
	}
	s.markRoom(ctx, logger, code, persistence.RoomAvailable)
}

func checkedInElsewhere(customers []persistence.Customer, bookingID, code string) bool {
	for _, customer := range customers {
		if customer.ID == bookingID {
			continue
		}
		for _, stay := range customer.RoomStays {
			if stay.BookingStatus == persistence.BookingCheckedIn && strings.EqualFold(stay.RoomNumber, code) {
				return true
			}
		}
	}
	return false
}

func stayIndex(booking persistence.Customer, code string) int {
	if code == "" {
		if len(booking.RoomStays) == 0 {
			return -1
		}
		return 0
	}
	for i, stay := range booking.RoomStays {
		if strings.EqualFold(stay.RoomNumber, code) {
			return i
		}
	}
	return -1
}

func validBookingStatus(status persistence.BookingStatus) bool {
	for _, candidate := range persistence.BookingStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}
