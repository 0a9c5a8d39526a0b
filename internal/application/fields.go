package application

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/reference"
)

// applyCustomerField folds one edited value into the booking record. Field
// names follow the keys used by the detail screens.
func applyCustomerField(c *persistence.Customer, field, value string) *ValidationError {
	if target, ok := customerText(c)[field]; ok {
		*target = value
		return nil
	}

	switch field {
	case "fullName":
		if strings.TrimSpace(value) == "" {
			return fieldError(field, "full name is required")
		}
		c.FullName = strings.TrimSpace(value)
	case "email":
		if !validEmail(value) {
			return fieldError(field, "email address is invalid")
		}
		c.Email = strings.TrimSpace(value)
	case "gender":
		return setEnum(field, value, &c.Gender, persistence.GenderMale, persistence.GenderFemale, persistence.GenderOther)
	case "guestType":
		return setEnum(field, value, &c.GuestType, persistence.GuestAdult, persistence.GuestChild, persistence.GuestInfant)
	case "customerStatus":
		return setEnum(field, value, &c.CustomerStatus, persistence.CustomerRegular, persistence.CustomerVIP, persistence.CustomerBlacklisted)
	case "activityStatus":
		return setEnum(field, value, &c.ActivityStatus, persistence.ActivityActive, persistence.ActivityInactive)
	case "paymentStatus":
		return setEnum(field, value, &c.PaymentStatus, persistence.PaymentPaid, persistence.PaymentPending, persistence.PaymentDepositPaid)
	case "emailStatus":
		return setEnum(field, value, &c.EmailStatus, persistence.EmailSent, persistence.EmailNotSent)
	case "tm30Status":
		return setEnum(field, value, &c.TM30Status, persistence.TM30Pending, persistence.TM30Submitted, persistence.TM30Acknowledged)
	case "visaType":
		return setVisaType(field, value, &c.VisaType)
	case "dob", "expireDateOfStay":
		if vErr := checkDate(field, value); vErr != nil {
			return vErr
		}
		if field == "dob" {
			c.DOB = value
		} else {
			c.ExpireDateOfStay = value
		}
	case "checkInDate", "checkOutDate":
		checkIn, checkOut := c.CheckInDate, c.CheckOutDate
		if field == "checkInDate" {
			checkIn = value
		} else {
			checkOut = value
		}
		if vErr := checkStay(checkIn, checkOut); vErr != nil {
			return vErr
		}
		c.CheckInDate, c.CheckOutDate = checkIn, checkOut
	case "adults", "children":
		n, vErr := parseCount(field, value)
		if vErr != nil {
			return vErr
		}
		if field == "adults" {
			c.Adults = n
		} else {
			c.Children = n
		}
	case "totalPrice":
		price, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || price.IsNegative() {
			return fieldError(field, "total price must be a non-negative number")
		}
		c.TotalPrice = price
	default:
		return fieldError(field, "field cannot be edited")
	}
	return nil
}

func customerText(c *persistence.Customer) map[string]*string {
	return map[string]*string{
		"passportId":        &c.PassportID,
		"nationality":       &c.Nationality,
		"phone":             &c.Phone,
		"currentAddress":    &c.CurrentAddress,
		"portOfEntry":       &c.PortOfEntry,
		"arrivalCardNumber": &c.ArrivalCardNumber,
		"relationship":      &c.Relationship,
		"occupation":        &c.Occupation,
		"arrivingFrom":      &c.ArrivingFrom,
		"goingTo":           &c.GoingTo,
		"issuedBy":          &c.IssuedBy,
		"remarks":           &c.Remarks,
	}
}

// applyGuestField folds one edited value into an accompanying guest.
func applyGuestField(g *persistence.Guest, field, value string) *ValidationError {
	if target, ok := guestText(g)[field]; ok {
		*target = value
		return nil
	}

	switch field {
	case "name", "fullName":
		g.Name = strings.TrimSpace(value)
	case "gender":
		return setEnum(field, value, &g.Gender, persistence.GenderMale, persistence.GenderFemale, persistence.GenderOther)
	case "guestType":
		return setEnum(field, value, &g.GuestType, persistence.GuestAdult, persistence.GuestChild, persistence.GuestInfant)
	case "visaType":
		return setVisaType(field, value, &g.VisaType)
	case "dob", "dateOfArrival", "expireDateOfStay":
		if vErr := checkDate(field, value); vErr != nil {
			return vErr
		}
		switch field {
		case "dob":
			g.DOB = value
		case "dateOfArrival":
			g.DateOfArrival = value
		default:
			g.ExpireDateOfStay = value
		}
	default:
		return fieldError(field, "field cannot be edited")
	}
	return nil
}

func guestText(g *persistence.Guest) map[string]*string {
	return map[string]*string{
		"passportId":        &g.PassportID,
		"nationality":       &g.Nationality,
		"phone":             &g.Phone,
		"portOfEntry":       &g.PortOfEntry,
		"arrivalCardNumber": &g.ArrivalCardNumber,
		"relationship":      &g.Relationship,
		"occupation":        &g.Occupation,
		"currentAddress":    &g.CurrentAddress,
		"arrivingFrom":      &g.ArrivingFrom,
		"goingTo":           &g.GoingTo,
		"issuedBy":          &g.IssuedBy,
		"remarks":           &g.Remarks,
	}
}

// recountParty refreshes the adult and child totals after a guest type
// change. The main booker always counts as an adult.
func recountParty(c *persistence.Customer) {
	adults, children := 1, 0
	for _, guest := range c.GuestList {
		switch guest.GuestType {
		case persistence.GuestAdult:
			adults++
		case persistence.GuestChild:
			children++
		}
	}
	c.Adults, c.Children = adults, children
}

func setEnum[T ~string](field, value string, target *T, allowed ...T) *ValidationError {
	for _, candidate := range allowed {
		if string(candidate) == value {
			*target = candidate
			return nil
		}
	}
	return fieldError(field, "unsupported value "+value)
}

func setVisaType(field, value string, target *string) *ValidationError {
	if value != "" && !reference.IsVisaType(value) {
		return fieldError(field, "unknown visa type")
	}
	*target = value
	return nil
}

func checkDate(field, value string) *ValidationError {
	if value == "" {
		return nil
	}
	if _, ok := dates.Parse(value); !ok {
		return fieldError(field, "date must be YYYY-MM-DD")
	}
	return nil
}

func checkStay(checkIn, checkOut string) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(checkIn) == "" {
		vErr.add("checkInDate", "check-in date is required")
	} else if _, ok := dates.Parse(checkIn); !ok {
		vErr.add("checkInDate", "date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(checkOut) == "" {
		vErr.add("checkOutDate", "check-out date is required")
	} else if _, ok := dates.Parse(checkOut); !ok {
		vErr.add("checkOutDate", "date must be YYYY-MM-DD")
	}
	if vErr.HasErrors() {
		return vErr
	}
	if dates.Nights(checkIn, checkOut) <= 0 {
		vErr.add("checkOutDate", "check-out must be after check-in")
		return vErr
	}
	return nil
}

func parseCount(field, value string) (int, *ValidationError) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || !d.IsInteger() || d.IsNegative() {
		return 0, fieldError(field, "must be a whole number")
	}
	return int(d.IntPart()), nil
}

func validEmail(value string) bool {
	value = strings.TrimSpace(value)
	at := strings.Index(value, "@")
	return at > 0 && at < len(value)-1 && !strings.ContainsAny(value, " \t")
}
