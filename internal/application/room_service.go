package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/projection"
)

// RoomCodePrefix is prepended to the number typed on the new room form.
const RoomCodePrefix = "RM"

// RoomService orchestrates validation and persistence for the room
// inventory.
type RoomService struct {
	store       RoomStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(store RoomStore, idGenerator func() string, now func() time.Time) *RoomService {
	return NewRoomServiceWithLogger(store, idGenerator, now, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(store RoomStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = NewUUID
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{store: store, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input and adds a room marked Available. The code is
// stored with the "RM" prefix.
func (s *RoomService) CreateRoom(ctx context.Context, input RoomInput) (room persistence.Room, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("RoomService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom", "room_code", input.RoomCode)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create room", "room created", "room_id", room.ID)
	}()

	vErr := validateRoomInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	bed := input.BedType
	if bed == "" {
		bed = persistence.BedKing
	}
	candidate := persistence.Room{
		ID:           s.idGenerator(),
		RoomCode:     normalizeRoomCode(input.RoomCode),
		Floor:        strings.TrimSpace(input.Floor),
		Type:         input.Type,
		BedType:      bed,
		Price:        input.Price,
		Status:       persistence.RoomAvailable,
		MaxOccupancy: input.MaxOccupancy,
		Description:  strings.TrimSpace(input.Description),
	}

	if err = mapStoreError(s.store.AddRoom(ctx, candidate)); err != nil {
		return
	}
	room = candidate
	return
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}

	code := strings.TrimSpace(input.RoomCode)
	if code == "" || strings.EqualFold(code, RoomCodePrefix) {
		vErr.add("roomCode", "room number is required")
	}
	if strings.TrimSpace(input.Floor) == "" {
		vErr.add("floor", "floor is required")
	}
	if !validRoomType(input.Type) {
		vErr.add("type", "unsupported room type")
	}
	if input.MaxOccupancy <= 0 {
		vErr.add("maxOccupancy", "max occupancy must be positive")
	}
	if input.Price.IsNegative() {
		vErr.add("price", "price must not be negative")
	}

	return vErr
}

// normalizeRoomCode upper-cases code and adds the "RM" prefix unless the
// caller already typed it.
func normalizeRoomCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if strings.HasPrefix(code, RoomCodePrefix) {
		return code
	}
	return RoomCodePrefix + code
}

// UpdateRoomField applies one committed field edit to a room. Renaming a
// room does not touch the stays that reference the old code.
func (s *RoomService) UpdateRoomField(ctx context.Context, roomID, field, value string) (room persistence.Room, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("RoomService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRoomField", "room_id", roomID, "field", field)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update room field", "room field updated")
	}()

	var current persistence.Room
	current, err = s.store.GetRoom(ctx, roomID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	next := current
	if vErr := applyRoomField(&next, field, value); vErr != nil {
		err = vErr
		return
	}
	if next == current {
		room = current
		return
	}

	if err = mapStoreError(s.store.UpdateRoom(ctx, next)); err != nil {
		return
	}
	room = next
	return
}

func applyRoomField(r *persistence.Room, field, value string) *ValidationError {
	trimmed := strings.TrimSpace(value)
	switch field {
	case "roomCode":
		if trimmed == "" {
			return fieldError(field, "room number is required")
		}
		r.RoomCode = normalizeRoomCode(trimmed)
	case "floor":
		if trimmed == "" {
			return fieldError(field, "floor is required")
		}
		r.Floor = trimmed
	case "floorAndView":
		r.FloorAndView = value
	case "description":
		r.Description = value
	case "internalNotes":
		r.InternalNotes = value
	case "type":
		return setEnum(field, value, &r.Type, persistence.RoomTypes...)
	case "bedType":
		return setEnum(field, value, &r.BedType, persistence.BedKing, persistence.BedQueen, persistence.BedTwin, persistence.BedSingle)
	case "status":
		return setEnum(field, value, &r.Status, persistence.RoomStatuses...)
	case "price":
		price, err := decimal.NewFromString(trimmed)
		if err != nil || price.IsNegative() {
			return fieldError(field, "price must be a non-negative number")
		}
		if !price.Equal(r.Price) {
			r.Price = price
		}
	case "maxOccupancy":
		n, err := strconv.Atoi(trimmed)
		if err != nil || n <= 0 {
			return fieldError(field, "max occupancy must be positive")
		}
		r.MaxOccupancy = n
	default:
		return fieldError(field, "field cannot be edited")
	}
	return nil
}

// SetRoomStatus records a housekeeping status change.
func (s *RoomService) SetRoomStatus(ctx context.Context, roomID string, status persistence.RoomStatus) (persistence.Room, error) {
	return s.UpdateRoomField(ctx, roomID, "status", string(status))
}

// DeleteRoom removes a room unless a Confirmed or Checked-In stay still
// references its code.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID string) (err error) {
	if s == nil || s.store == nil {
		return fmt.Errorf("RoomService is not configured")
	}

	logger := s.loggerWith(ctx, "DeleteRoom", "room_id", roomID)
	defer func() {
		logOutcome(ctx, logger, err, "failed to delete room", "room deleted")
	}()

	var room persistence.Room
	room, err = s.store.GetRoom(ctx, roomID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	var snap persistence.Snapshot
	snap, err = s.store.Snapshot(ctx)
	if err != nil {
		return
	}
	for _, claim := range projection.DetectClaims(projection.AvailabilityQuery{Customers: snap.Customers}) {
		if strings.EqualFold(claim.RoomCode, room.RoomCode) {
			err = fmt.Errorf("room %s held by %s: %w", room.RoomCode, claim.WithBookingID, ErrRoomInUse)
			return
		}
	}

	err = mapStoreError(s.store.RemoveRoom(ctx, roomID))
	return
}

// RoomDetails returns a room with the guest currently occupying it.
func (s *RoomService) RoomDetails(ctx context.Context, roomID string) (details RoomDetails, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("RoomService is not configured")
		return
	}

	var snap persistence.Snapshot
	snap, err = s.store.Snapshot(ctx)
	if err != nil {
		return
	}

	var room persistence.Room
	found := false
	for _, candidate := range snap.Rooms {
		if candidate.ID == roomID || strings.EqualFold(candidate.RoomCode, roomID) {
			room, found = candidate, true
			break
		}
	}
	if !found {
		err = fmt.Errorf("room %s: %w", roomID, ErrNotFound)
		s.loggerWith(ctx, "RoomDetails", "room_id", roomID).
			WarnContext(ctx, "room not found", "error_kind", ErrorKind(err))
		return
	}

	details.Room = room
	details.Label = projection.BuildRoomDirectory(snap.Rooms).Label(room.RoomCode)
	details.Guest, details.Occupied = projection.BuildOccupancyIndex(snap.Customers).Guest(room.RoomCode)
	return
}

func validRoomType(t persistence.RoomType) bool {
	for _, candidate := range persistence.RoomTypes {
		if candidate == t {
			return true
		}
	}
	return false
}
