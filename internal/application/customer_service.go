package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/projection"
)

// CustomerService edits the person records behind the customer list. A
// customer is every booking sharing one email address.
type CustomerService struct {
	bookings persistence.BookingRepository
	logger   *slog.Logger
}

// NewCustomerService constructs a customer service.
func NewCustomerService(bookings persistence.BookingRepository) *CustomerService {
	return NewCustomerServiceWithLogger(bookings, nil)
}

// NewCustomerServiceWithLogger constructs a customer service with a specified logger.
func NewCustomerServiceWithLogger(bookings persistence.BookingRepository, logger *slog.Logger) *CustomerService {
	return &CustomerService{bookings: bookings, logger: defaultLogger(logger)}
}

func (s *CustomerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CustomerService", operation, attrs...)
}

// UpdateCustomerField applies one committed edit to the main booker of the
// booking record bookingID.
func (s *CustomerService) UpdateCustomerField(ctx context.Context, bookingID, field, value string) (booking persistence.Customer, err error) {
	if s == nil || s.bookings == nil {
		err = fmt.Errorf("CustomerService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateCustomerField", "booking_record_id", bookingID, "field", field)
	defer func() {
		logOutcome(ctx, logger, err, "failed to update customer field", "customer field updated")
	}()

	var current persistence.Customer
	current, err = s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	next := current
	if vErr := applyCustomerField(&next, field, value); vErr != nil {
		err = vErr
		return
	}
	if err = mapStoreError(s.bookings.UpdateBooking(ctx, next)); err != nil {
		return
	}
	booking = next
	return
}

// DeleteCustomer removes every booking made under email and reports how
// many were removed.
func (s *CustomerService) DeleteCustomer(ctx context.Context, email string) (removed int, err error) {
	if s == nil || s.bookings == nil {
		err = fmt.Errorf("CustomerService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "DeleteCustomer")
	defer func() {
		logOutcome(ctx, logger, err, "failed to delete customer", "customer deleted", "removed", removed)
	}()

	if strings.TrimSpace(email) == "" {
		err = fieldError("email", "email is required")
		return
	}
	removed, err = s.bookings.RemoveBookingsByEmail(ctx, email)
	err = mapStoreError(err)
	return
}

// History lists the bookings made under email, newest check-in first.
func (s *CustomerService) History(ctx context.Context, email string) ([]persistence.Customer, error) {
	if s == nil || s.bookings == nil {
		return nil, fmt.Errorf("CustomerService is not configured")
	}
	all, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	history := projection.BookingHistory(all, email)
	if len(history) == 0 {
		return nil, fmt.Errorf("customer %s: %w", email, ErrNotFound)
	}
	return history, nil
}
