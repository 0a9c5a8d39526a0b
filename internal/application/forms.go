package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/example/frontdesk/internal/fieldedit"
	"github.com/example/frontdesk/internal/navigation"
	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/reference"
)

type formField struct {
	name  string
	label string
	kind  fieldedit.Kind
	opts  []fieldedit.FieldOption
}

var (
	genderOptions    = fieldedit.WithOptions(string(persistence.GenderMale), string(persistence.GenderFemale), string(persistence.GenderOther))
	guestTypeOptions = fieldedit.WithOptions(string(persistence.GuestAdult), string(persistence.GuestChild), string(persistence.GuestInfant))
)

func bookerFields() []formField {
	return []formField{
		{name: "fullName", label: "Full name", kind: fieldedit.KindText},
		{name: "email", label: "Email", kind: fieldedit.KindEmail},
		{name: "phone", label: "Phone", kind: fieldedit.KindText},
		{name: "passportId", label: "Passport", kind: fieldedit.KindText},
		{name: "nationality", label: "Nationality", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{fieldedit.WithOptions(reference.Nationalities...)}},
		{name: "gender", label: "Gender", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{genderOptions}},
		{name: "dob", label: "Date of birth", kind: fieldedit.KindDate},
		{name: "visaType", label: "Visa type", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{fieldedit.WithOptions(reference.VisaTypes...)}},
		{name: "portOfEntry", label: "Port of entry", kind: fieldedit.KindSearchableSelect, opts: []fieldedit.FieldOption{fieldedit.WithGroups(reference.PortsOfEntry)}},
		{name: "arrivalCardNumber", label: "Arrival card", kind: fieldedit.KindText},
		{name: "expireDateOfStay", label: "Stay permitted until", kind: fieldedit.KindDate},
		{name: "occupation", label: "Occupation", kind: fieldedit.KindText},
		{name: "arrivingFrom", label: "Arriving from", kind: fieldedit.KindText},
		{name: "goingTo", label: "Going to", kind: fieldedit.KindText},
		{name: "checkInDate", label: "Check-in", kind: fieldedit.KindDate},
		{name: "checkOutDate", label: "Check-out", kind: fieldedit.KindDate},
		{name: "adults", label: "Adults", kind: fieldedit.KindNumber},
		{name: "children", label: "Children", kind: fieldedit.KindNumber},
		{name: "totalPrice", label: "Total price", kind: fieldedit.KindNumber},
		{name: "paymentStatus", label: "Payment", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{
			fieldedit.WithOptions(string(persistence.PaymentPaid), string(persistence.PaymentPending), string(persistence.PaymentDepositPaid)),
		}},
		{name: "customerStatus", label: "Customer status", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{
			fieldedit.WithOptions(string(persistence.CustomerRegular), string(persistence.CustomerVIP), string(persistence.CustomerBlacklisted)),
		}},
		{name: "tm30Status", label: "TM.30", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{
			fieldedit.WithOptions(string(persistence.TM30Pending), string(persistence.TM30Submitted), string(persistence.TM30Acknowledged)),
		}},
		{name: "currentAddress", label: "Address", kind: fieldedit.KindTextarea},
		{name: "remarks", label: "Remarks", kind: fieldedit.KindTextarea},
	}
}

func guestFields() []formField {
	return []formField{
		{name: "name", label: "Name", kind: fieldedit.KindText},
		{name: "guestType", label: "Guest type", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{guestTypeOptions}},
		{name: "relationship", label: "Relationship", kind: fieldedit.KindText},
		{name: "passportId", label: "Passport", kind: fieldedit.KindText},
		{name: "nationality", label: "Nationality", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{fieldedit.WithOptions(reference.Nationalities...)}},
		{name: "gender", label: "Gender", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{genderOptions}},
		{name: "dob", label: "Date of birth", kind: fieldedit.KindDate},
		{name: "visaType", label: "Visa type", kind: fieldedit.KindSelect, opts: []fieldedit.FieldOption{fieldedit.WithOptions(reference.VisaTypes...)}},
		{name: "portOfEntry", label: "Port of entry", kind: fieldedit.KindSearchableSelect, opts: []fieldedit.FieldOption{fieldedit.WithGroups(reference.PortsOfEntry)}},
		{name: "dateOfArrival", label: "Arrived", kind: fieldedit.KindDate},
		{name: "expireDateOfStay", label: "Stay permitted until", kind: fieldedit.KindDate},
		{name: "occupation", label: "Occupation", kind: fieldedit.KindText},
		{name: "remarks", label: "Remarks", kind: fieldedit.KindTextarea},
	}
}

func bookerValues(c persistence.Customer) map[string]string {
	return map[string]string{
		"fullName":          c.FullName,
		"email":             c.Email,
		"phone":             c.Phone,
		"passportId":        c.PassportID,
		"nationality":       c.Nationality,
		"gender":            string(c.Gender),
		"dob":               c.DOB,
		"visaType":          c.VisaType,
		"portOfEntry":       c.PortOfEntry,
		"arrivalCardNumber": c.ArrivalCardNumber,
		"expireDateOfStay":  c.ExpireDateOfStay,
		"occupation":        c.Occupation,
		"arrivingFrom":      c.ArrivingFrom,
		"goingTo":           c.GoingTo,
		"checkInDate":       c.CheckInDate,
		"checkOutDate":      c.CheckOutDate,
		"adults":            strconv.Itoa(c.Adults),
		"children":          strconv.Itoa(c.Children),
		"totalPrice":        c.TotalPrice.String(),
		"paymentStatus":     string(c.PaymentStatus),
		"customerStatus":    string(c.CustomerStatus),
		"tm30Status":        string(c.TM30Status),
		"currentAddress":    c.CurrentAddress,
		"remarks":           c.Remarks,
	}
}

func guestValues(g persistence.Guest) map[string]string {
	return map[string]string{
		"name":             g.Name,
		"guestType":        string(g.GuestType),
		"relationship":     g.Relationship,
		"passportId":       g.PassportID,
		"nationality":      g.Nationality,
		"gender":           string(g.Gender),
		"dob":              g.DOB,
		"visaType":         g.VisaType,
		"portOfEntry":      g.PortOfEntry,
		"dateOfArrival":    g.DateOfArrival,
		"expireDateOfStay": g.ExpireDateOfStay,
		"occupation":       g.Occupation,
		"remarks":          g.Remarks,
	}
}

// personValues returns the editable values of the booker or of the guest
// with personID.
func personValues(booking persistence.Customer, personID string) (map[string]string, bool) {
	if personID == "" || personID == booking.ID {
		return bookerValues(booking), true
	}
	for _, guest := range booking.GuestList {
		if guest.ID == personID {
			return guestValues(guest), true
		}
	}
	return nil, false
}

// BookingDetailsForm builds the inline-edit form for one person on a booking
// detail screen. personID selects the main booker (empty or the booking's
// own id) or one of its guests. A changed commit goes through
// UpdateBookingField and the stored result is pushed back into every field,
// so derived values such as the party counts stay current. notice may be
// nil; otherwise it reports each save or failure.
func BookingDetailsForm(ctx context.Context, svc *BookingService, booking persistence.Customer, personID string, notice *navigation.Notice) (*fieldedit.Form, error) {
	values, ok := personValues(booking, personID)
	if !ok {
		return nil, fmt.Errorf("guest %s: %w", personID, ErrNotFound)
	}
	fields := bookerFields()
	if personID != "" && personID != booking.ID {
		fields = guestFields()
	}

	var form *fieldedit.Form
	form = fieldedit.NewForm(func(name, value string) error {
		label := name
		if field, ok := form.Field(name); ok {
			label = field.Label()
		}
		updated, err := svc.UpdateBookingField(ctx, booking.ID, personID, name, value)
		if err != nil {
			if notice != nil {
				notice.Error(fmt.Sprintf("Could not update %s: %v", label, err))
			}
			return err
		}
		if next, ok := personValues(updated, personID); ok {
			form.Reset(next)
		}
		if notice != nil {
			notice.Success(label + " updated")
		}
		return nil
	})
	for _, f := range fields {
		opts := append([]fieldedit.FieldOption{fieldedit.WithLabel(f.label)}, f.opts...)
		form.Add(f.name, f.kind, values[f.name], opts...)
	}
	return form, nil
}
