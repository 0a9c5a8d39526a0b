package memory

import (
	"context"
	"fmt"

	"github.com/example/frontdesk/internal/persistence"
)

// AddBooking appends a fully populated booking record.
func (s *Store) AddBooking(ctx context.Context, customer persistence.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if customer.ID == "" {
		return fmt.Errorf("memory: booking id is required")
	}
	if _, ok := s.bookings[customer.ID]; ok {
		return fmt.Errorf("memory: booking %s: %w", customer.ID, persistence.ErrDuplicate)
	}
	if customer.BookingID != "" && s.bookingIDTakenLocked(customer.BookingID, customer.ID) {
		return fmt.Errorf("memory: booking reference %s: %w", customer.BookingID, persistence.ErrDuplicate)
	}

	s.bookings[customer.ID] = cloneCustomer(customer)
	s.bookingOrder = append(s.bookingOrder, customer.ID)
	s.bumpLocked()
	return nil
}

// UpdateBooking replaces the stored record, nested stays and guests included.
func (s *Store) UpdateBooking(ctx context.Context, customer persistence.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[customer.ID]; !ok {
		return persistence.ErrNotFound
	}
	if customer.BookingID != "" && s.bookingIDTakenLocked(customer.BookingID, customer.ID) {
		return fmt.Errorf("memory: booking reference %s: %w", customer.BookingID, persistence.ErrDuplicate)
	}

	s.bookings[customer.ID] = cloneCustomer(customer)
	s.bumpLocked()
	return nil
}

// RemoveBooking deletes a single booking record.
func (s *Store) RemoveBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return persistence.ErrNotFound
	}

	delete(s.bookings, id)
	s.bookingOrder = removeString(s.bookingOrder, id)
	s.bumpLocked()
	return nil
}

// RemoveBookingsByEmail deletes every booking made under the email and
// returns how many were removed. Emails match exactly, the same key the
// customer roll-up groups by.
func (s *Store) RemoveBookingsByEmail(ctx context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.bookingOrder[:0:0]
	removed := 0
	for _, id := range s.bookingOrder {
		if s.bookings[id].Email == email {
			delete(s.bookings, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	if removed == 0 {
		return 0, persistence.ErrNotFound
	}

	s.bookingOrder = kept
	s.bumpLocked()
	return removed, nil
}

// GetBooking retrieves a booking by record ID.
func (s *Store) GetBooking(ctx context.Context, id string) (persistence.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.bookings[id]
	if !ok {
		return persistence.Customer{}, persistence.ErrNotFound
	}
	return cloneCustomer(customer), nil
}

// BookingByBookingID retrieves a booking by its printed booking reference.
func (s *Store) BookingByBookingID(ctx context.Context, bookingID string) (persistence.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.bookingOrder {
		if customer := s.bookings[id]; customer.BookingID == bookingID {
			return cloneCustomer(customer), nil
		}
	}
	return persistence.Customer{}, persistence.ErrNotFound
}

// ListBookings returns all bookings in insertion order.
func (s *Store) ListBookings(ctx context.Context) ([]persistence.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBookingsLocked(), nil
}

func (s *Store) listBookingsLocked() []persistence.Customer {
	customers := make([]persistence.Customer, 0, len(s.bookingOrder))
	for _, id := range s.bookingOrder {
		customers = append(customers, cloneCustomer(s.bookings[id]))
	}
	return customers
}

func (s *Store) bookingIDTakenLocked(bookingID, ownerID string) bool {
	for id, customer := range s.bookings {
		if id != ownerID && customer.BookingID == bookingID {
			return true
		}
	}
	return false
}

func cloneCustomer(customer persistence.Customer) persistence.Customer {
	clone := customer
	if customer.RoomStays != nil {
		clone.RoomStays = append([]persistence.RoomStay(nil), customer.RoomStays...)
	}
	if customer.GuestList != nil {
		clone.GuestList = append([]persistence.Guest(nil), customer.GuestList...)
	}
	return clone
}

func removeString(values []string, target string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value == target {
			continue
		}
		result = append(result, value)
	}
	return result
}
