package projection

import (
	"slices"
	"strings"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/reference"
)

// ReportRow is one line of the R.R.4 guest register.
type ReportRow struct {
	CheckInDate      string
	CheckInDateTime  string
	RoomNumber       string
	FullName         string
	Nationality      string
	IDNumber         string
	IssuedBy         string
	CurrentAddress   string
	Occupation       string
	ArrivingFrom     string
	GoingTo          string
	CheckOutDateTime string
	Remarks          string
}

// ReportRows flattens bookings checked in within r into register lines: per
// stay the main booker followed by each guest. Rows are ordered by check-in
// date; the sort is stable.
func ReportRows(customers []persistence.Customer, r dates.Range) []ReportRow {
	var rows []ReportRow
	for _, customer := range customers {
		if !r.Contains(customer.CheckInDate) {
			continue
		}
		checkIn := dates.FormatDDMMYYYY(customer.CheckInDate)
		for _, stay := range customer.RoomStays {
			checkOut := ""
			if stay.BookingStatus == persistence.BookingCheckedOut {
				checkOut = dates.FormatDDMMYYYY(customer.CheckOutDate)
			}

			rows = append(rows, ReportRow{
				CheckInDate:      customer.CheckInDate,
				CheckInDateTime:  checkIn,
				RoomNumber:       stay.RoomNumber,
				FullName:         customer.FullName,
				Nationality:      customer.Nationality,
				IDNumber:         customer.PassportID,
				IssuedBy:         customer.IssuedBy,
				CurrentAddress:   customer.CurrentAddress,
				Occupation:       customer.Occupation,
				ArrivingFrom:     customer.ArrivingFrom,
				GoingTo:          customer.GoingTo,
				CheckOutDateTime: checkOut,
				Remarks:          customer.Remarks,
			})
			for _, guest := range customer.GuestList {
				rows = append(rows, ReportRow{
					CheckInDate:      customer.CheckInDate,
					CheckInDateTime:  checkIn,
					RoomNumber:       stay.RoomNumber,
					FullName:         guest.Name,
					Nationality:      guest.Nationality,
					IDNumber:         guest.PassportID,
					IssuedBy:         guest.IssuedBy,
					CurrentAddress:   guest.CurrentAddress,
					Occupation:       guest.Occupation,
					ArrivingFrom:     guest.ArrivingFrom,
					GoingTo:          guest.GoingTo,
					CheckOutDateTime: checkOut,
					Remarks:          guest.Remarks,
				})
			}
		}
	}

	slices.SortStableFunc(rows, func(a, b ReportRow) int {
		return compareDates(a.CheckInDate, b.CheckInDate)
	})
	return rows
}

// TM30Row is one traveler line of the TM.30 notification sheet.
type TM30Row struct {
	ID           string
	FirstName    string
	MiddleName   string
	LastName     string
	Gender       string
	PassportID   string
	Nationality  string
	DOB          string
	CheckOutDate string
	Phone        string
}

// TM30Rows lists the booker and every guest of bookings checking out within
// r, in booking order.
func TM30Rows(customers []persistence.Customer, r dates.Range) []TM30Row {
	var rows []TM30Row
	for _, customer := range customers {
		if !r.Contains(customer.CheckOutDate) {
			continue
		}
		checkOut := dates.FormatDDMMYYYY(customer.CheckOutDate)

		first, middle, last := SplitName(customer.FullName)
		rows = append(rows, TM30Row{
			ID:           customer.BookingID + "-" + customer.PassportID,
			FirstName:    first,
			MiddleName:   middle,
			LastName:     last,
			Gender:       reference.GenderCode(customer.Gender),
			PassportID:   customer.PassportID,
			Nationality:  reference.NationalityCode(customer.Nationality),
			DOB:          dates.FormatDDMMYYYY(customer.DOB),
			CheckOutDate: checkOut,
			Phone:        customer.Phone,
		})
		for _, guest := range customer.GuestList {
			first, middle, last := SplitName(guest.Name)
			rows = append(rows, TM30Row{
				ID:           customer.BookingID + "-" + guest.PassportID,
				FirstName:    first,
				MiddleName:   middle,
				LastName:     last,
				Gender:       reference.GenderCode(guest.Gender),
				PassportID:   guest.PassportID,
				Nationality:  reference.NationalityCode(guest.Nationality),
				DOB:          dates.FormatDDMMYYYY(guest.DOB),
				CheckOutDate: checkOut,
				Phone:        guest.Phone,
			})
		}
	}
	return rows
}

// SplitName breaks a full name on spaces into first, middle and last parts.
// A single word is a first name; everything between the first and last word
// is the middle name.
func SplitName(fullName string) (first, middle, last string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], "", parts[1]
	}
	return parts[0], strings.Join(parts[1:len(parts)-1], " "), parts[len(parts)-1]
}
