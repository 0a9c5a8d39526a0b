// Package memory provides the in-process entity store. It owns every
// collection and hands out clones so callers never share backing arrays.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/example/frontdesk/internal/listview"
	"github.com/example/frontdesk/internal/persistence"
)

// Store is the in-memory implementation of persistence.Store.
type Store struct {
	mu sync.RWMutex

	revision uint64

	rooms     map[string]persistence.Room
	roomCodes map[string]string

	bookings     map[string]persistence.Customer
	bookingOrder []string

	users     map[string]persistence.User
	userOrder []string

	roles       map[string]persistence.Role
	roleOrder   []string
	assignments map[string]string

	approvals     map[string]persistence.PendingApproval
	approvalOrder []string
}

var _ persistence.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		rooms:       make(map[string]persistence.Room),
		roomCodes:   make(map[string]string),
		bookings:    make(map[string]persistence.Customer),
		users:       make(map[string]persistence.User),
		roles:       make(map[string]persistence.Role),
		assignments: make(map[string]string),
		approvals:   make(map[string]persistence.PendingApproval),
	}
}

// Revision returns the mutation counter. Every successful write bumps it.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Snapshot returns rooms and bookings captured under a single read lock.
func (s *Store) Snapshot(ctx context.Context) (persistence.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return persistence.Snapshot{
		Revision:  s.revision,
		Rooms:     s.listRoomsLocked(),
		Customers: s.listBookingsLocked(),
	}, nil
}

func (s *Store) bumpLocked() {
	s.revision++
}

// --- RoomRepository implementation ---

// AddRoom stores a new room. Both the id and the room code must be unique.
func (s *Store) AddRoom(ctx context.Context, room persistence.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room.ID]; ok {
		return fmt.Errorf("memory: room %s: %w", room.ID, persistence.ErrDuplicate)
	}
	if _, ok := s.roomCodes[codeKey(room.RoomCode)]; ok {
		return fmt.Errorf("memory: room code %s: %w", room.RoomCode, persistence.ErrDuplicate)
	}

	s.rooms[room.ID] = cloneRoom(room)
	s.roomCodes[codeKey(room.RoomCode)] = room.ID
	s.bumpLocked()
	return nil
}

// UpdateRoom replaces an existing room and keeps the code index in step.
func (s *Store) UpdateRoom(ctx context.Context, room persistence.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[room.ID]
	if !ok {
		return persistence.ErrNotFound
	}
	if owner, ok := s.roomCodes[codeKey(room.RoomCode)]; ok && owner != room.ID {
		return fmt.Errorf("memory: room code %s: %w", room.RoomCode, persistence.ErrDuplicate)
	}

	delete(s.roomCodes, codeKey(existing.RoomCode))
	s.rooms[room.ID] = cloneRoom(room)
	s.roomCodes[codeKey(room.RoomCode)] = room.ID
	s.bumpLocked()
	return nil
}

// RemoveRoom deletes a room. Room stays referencing its code are left alone.
func (s *Store) RemoveRoom(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return persistence.ErrNotFound
	}

	delete(s.rooms, id)
	delete(s.roomCodes, codeKey(room.RoomCode))
	s.bumpLocked()
	return nil
}

// GetRoom retrieves a room by ID.
func (s *Store) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return cloneRoom(room), nil
}

// RoomByCode resolves a room code through the code index.
func (s *Store) RoomByCode(ctx context.Context, code string) (persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.roomCodes[codeKey(code)]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return cloneRoom(s.rooms[id]), nil
}

// ListRooms returns all rooms in natural room-code order.
func (s *Store) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listRoomsLocked(), nil
}

func (s *Store) listRoomsLocked() []persistence.Room {
	rooms := make([]persistence.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, cloneRoom(room))
	}

	slices.SortFunc(rooms, func(a, b persistence.Room) int {
		if c := listview.NaturalCompare(a.RoomCode, b.RoomCode); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return rooms
}

func codeKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func cloneRoom(room persistence.Room) persistence.Room {
	return room
}
