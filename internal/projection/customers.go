package projection

import (
	"slices"

	"github.com/example/frontdesk/internal/persistence"
)

// UniqueCustomer is one person on the customer list, keyed by email.
type UniqueCustomer struct {
	ID           string
	FullName     string
	Email        string
	PassportID   string
	Nationality  string
	Gender       persistence.Gender
	Latest       persistence.Customer
	BookingCount int
}

// RollUpCustomers groups bookings by email. The representative record is the
// one with the latest check-in date; ties keep the earlier record. Output
// follows the order in which each email was first seen.
func RollUpCustomers(customers []persistence.Customer) []UniqueCustomer {
	index := make(map[string]int)
	var out []UniqueCustomer

	for _, customer := range customers {
		pos, ok := index[customer.Email]
		if !ok {
			index[customer.Email] = len(out)
			out = append(out, UniqueCustomer{Latest: customer, BookingCount: 1})
			continue
		}
		entry := &out[pos]
		entry.BookingCount++
		if compareDates(customer.CheckInDate, entry.Latest.CheckInDate) > 0 {
			entry.Latest = customer
		}
	}

	for i := range out {
		latest := out[i].Latest
		out[i].ID = latest.Email
		out[i].FullName = latest.FullName
		out[i].Email = latest.Email
		out[i].PassportID = latest.PassportID
		out[i].Nationality = latest.Nationality
		out[i].Gender = latest.Gender
	}
	return out
}

// BookingHistory returns every booking made under email, newest check-in
// first.
func BookingHistory(customers []persistence.Customer, email string) []persistence.Customer {
	var history []persistence.Customer
	for _, customer := range customers {
		if customer.Email == email {
			history = append(history, customer)
		}
	}
	slices.SortStableFunc(history, func(a, b persistence.Customer) int {
		return compareDates(b.CheckInDate, a.CheckInDate)
	})
	return history
}
