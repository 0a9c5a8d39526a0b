package seed

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/projection"
)

const (
	visaExempt   = "Visa Exemption (ยกเว้นวีซ่า)"
	touristVisa  = "Tourist Visa (TR)"
	suvarnabhumi = "ท่าอากาศยานสุวรรณภูมิ (Suvarnabhumi Airport)"
)

var occupations = []string{"Engineer", "Doctor", "Teacher", "Student", "Business Owner", "Retired", "Software Developer", "Artist"}

// profile is a returning customer whose bookings are generated from a
// template. The first booking of a profile with a room is a live stay.
type profile struct {
	name        string
	email       string
	phone       string
	passport    string
	nationality string
	gender      persistence.Gender
	bookings    int
	status      persistence.CustomerStatus
	activity    persistence.ActivityStatus
	checkedInTo string
}

var profiles = []profile{
	{"John Smith", "j.smith@example.com", "(555) 123-4567", "P71895477", "American", persistence.GenderMale, 12, persistence.CustomerVIP, persistence.ActivityActive, "RM101"},
	{"Lisa Wong", "lisa.wong@corp.com", "(555) 987-6543", "P80202533", "Canadian", persistence.GenderFemale, 5, "", persistence.ActivityActive, "RM104"},
	{"Robert Brown", "r.brown@mail.com", "(555) 444-3333", "P32350392", "British", persistence.GenderMale, 1, "", persistence.ActivityActive, "RM202"},
	{"Jane Williams", "j.williams@web.com", "(555) 111-2222", "P63451270", "Australian", persistence.GenderFemale, 2, persistence.CustomerBlacklisted, persistence.ActivityInactive, ""},
	{"Sarah Lee", "s.lee@kr.com", "(555) 777-8888", "P75685294", "Korean", persistence.GenderFemale, 7, "", persistence.ActivityActive, ""},
}

func profileBookings(today string, rooms []persistence.Room) []persistence.Customer {
	directory := projection.BuildRoomDirectory(rooms)
	var out []persistence.Customer

	for _, p := range profiles {
		passportTail := p.passport[len(p.passport)-4:]
		for i := 0; i < p.bookings; i++ {
			var checkIn, checkOut, roomCode string
			status := persistence.BookingCheckedOut
			if i == 0 && p.checkedInTo != "" {
				checkIn, checkOut = dates.AddDays(today, -2), dates.AddDays(today, 5)
				roomCode = p.checkedInTo
				status = persistence.BookingCheckedIn
			} else {
				daysInPast := 30 + i*45 + len(p.name)*2
				checkOut = dates.AddDays(today, -daysInPast)
				checkIn = dates.AddDays(checkOut, -(3 + i%5))
				roomCode = rooms[(i+int(p.name[0]))%len(rooms)].RoomCode
			}

			room, ok := directory.Lookup(roomCode)
			if !ok {
				room = rooms[0]
			}
			nights := dates.Nights(checkIn, checkOut)

			customerStatus := p.status
			if customerStatus == "" {
				customerStatus = persistence.CustomerRegular
			}
			remarks := ""
			if i == 1 {
				remarks = "Returning guest"
			}

			out = append(out, persistence.Customer{
				ID:                fmt.Sprintf("C-%s-%d", strings.SplitN(p.email, "@", 2)[0], i),
				BookingID:         fmt.Sprintf("B%s%d", passportTail, i),
				FullName:          p.name,
				Email:             p.email,
				Phone:             p.phone,
				PassportID:        p.passport,
				Nationality:       p.nationality,
				Gender:            p.gender,
				DOB:               fmt.Sprintf("19%d-01-01", 80+i%15),
				GuestType:         persistence.GuestAdult,
				CustomerStatus:    customerStatus,
				ActivityStatus:    p.activity,
				CurrentAddress:    "123 Memory Lane",
				CheckInDate:       checkIn,
				CheckOutDate:      checkOut,
				RoomStays:         []persistence.RoomStay{{RoomNumber: roomCode, BookingStatus: status}},
				PaymentStatus:     persistence.PaymentPaid,
				EmailStatus:       persistence.EmailSent,
				Adults:            1 + i%2,
				Children:          i % 3,
				TotalPrice:        room.Price.Mul(decimal.NewFromInt(int64(nights))),
				VisaType:          visaExempt,
				ExpireDateOfStay:  checkOut,
				PortOfEntry:       suvarnabhumi,
				ArrivalCardNumber: fmt.Sprintf("TM%s%d", passportTail, i),
				Relationship:      "Guest",
				TM30Status:        persistence.TM30Acknowledged,
				Occupation:        occupations[i%len(occupations)],
				ArrivingFrom:      "Previous City",
				GoingTo:           "Next City",
				IssuedBy:          "Govt. of " + p.nationality,
				Remarks:           remarks,
			})
		}
	}
	return out
}

// scenarioBookings are hand-written stays that keep the occupied rooms of
// the named inventory occupied and give the detail views families to show.
// RM401 is deliberately absent from the inventory.
func scenarioBookings(today string) []persistence.Customer {
	longStayIn, longStayOut := dates.AddDays(today, -4), dates.AddDays(today, 9)

	return []persistence.Customer{
		{
			ID: "C-EW-1", BookingID: "B_EW_1", FullName: "Emily White", Email: "emily.white@example.com",
			Nationality: "French", PassportID: "P_EW_123", DOB: "1990-01-01", Gender: persistence.GenderFemale,
			GuestType: persistence.GuestAdult, CustomerStatus: persistence.CustomerRegular, ActivityStatus: persistence.ActivityActive,
			CheckInDate: dates.AddDays(today, -3), CheckOutDate: dates.AddDays(today, 4),
			RoomStays:     []persistence.RoomStay{{RoomNumber: "RM203", BookingStatus: persistence.BookingCheckedIn}},
			PaymentStatus: persistence.PaymentPaid, EmailStatus: persistence.EmailSent,
			Adults: 1, TotalPrice: decimal.NewFromInt(14000), VisaType: touristVisa, TM30Status: persistence.TM30Pending,
		},
		family(persistence.Customer{
			ID: "C-MJ-1", BookingID: "B_MJ_1", FullName: "Michael Johnson", Email: "michael.j@example.com",
			Nationality: "American", PassportID: "P_MJ_456", DOB: "1985-05-15", Gender: persistence.GenderMale,
			GuestType: persistence.GuestAdult, CustomerStatus: persistence.CustomerBlacklisted, ActivityStatus: persistence.ActivityInactive,
			CurrentAddress: "128 Main St, City, Country",
			CheckInDate:    longStayIn, CheckOutDate: longStayOut,
			RoomStays:     []persistence.RoomStay{{RoomNumber: "RM301", BookingStatus: persistence.BookingCheckedIn}},
			PaymentStatus: persistence.PaymentPaid, EmailStatus: persistence.EmailSent,
			Adults: 1, Children: 1,
			TotalPrice: decimal.NewFromInt(32500), VisaType: visaExempt, ExpireDateOfStay: longStayOut, PortOfEntry: suvarnabhumi,
			ArrivalCardNumber: "TM123456", Relationship: "Guest", TM30Status: persistence.TM30Acknowledged, Occupation: "Engineer",
			ArrivingFrom: "New York, USA", GoingTo: "Bangkok, Thailand", IssuedBy: "Govt. of USA",
		},
			member{"G_EJ_1", "Emily Johnson", persistence.GuestChild, "P_EJ_789", persistence.GenderFemale, "2015-10-10", "Child", "Student", ""},
		),
		{
			ID: "C-SC-1", BookingID: "B_SC_1", FullName: "Sarah Connor", Email: "sarah.connor@example.com",
			Nationality: "American", PassportID: "P_SC_789", DOB: "1988-02-20", Gender: persistence.GenderFemale,
			GuestType: persistence.GuestAdult, CustomerStatus: persistence.CustomerRegular, ActivityStatus: persistence.ActivityActive,
			CheckInDate: longStayIn, CheckOutDate: longStayOut,
			RoomStays:     []persistence.RoomStay{{RoomNumber: "RM302", BookingStatus: persistence.BookingCheckedIn}},
			PaymentStatus: persistence.PaymentPending, EmailStatus: persistence.EmailNotSent,
			Adults: 1, TotalPrice: decimal.NewFromInt(32500), VisaType: touristVisa, TM30Status: persistence.TM30Pending,
		},
		family(persistence.Customer{
			ID: "C-KJ-1", BookingID: "B10006", FullName: "Katie Jones", Email: "katie.jones@example.com",
			Nationality: "British", PassportID: "P555666777", DOB: "1988-08-08", Phone: "(555) 888-9999", Gender: persistence.GenderFemale,
			GuestType: persistence.GuestAdult, CustomerStatus: persistence.CustomerRegular, ActivityStatus: persistence.ActivityActive,
			CurrentAddress: "15 Windsor Way, London, UK",
			CheckInDate:    today, CheckOutDate: dates.AddDays(today, 7),
			RoomStays:     []persistence.RoomStay{{RoomNumber: "RM105", BookingStatus: persistence.BookingCheckedIn}},
			PaymentStatus: persistence.PaymentPaid, EmailStatus: persistence.EmailSent,
			Adults: 2, Children: 1,
			TotalPrice: decimal.NewFromInt(9000), VisaType: visaExempt, ExpireDateOfStay: "2025-12-31", PortOfEntry: suvarnabhumi,
			ArrivalCardNumber: "TM888888", Relationship: "Family Head", TM30Status: persistence.TM30Acknowledged, Occupation: "Designer",
			ArrivingFrom: "London, UK", GoingTo: "Phuket, Thailand", IssuedBy: "Govt. of UK", Remarks: "Honeymoon trip",
		},
			member{"G_TJ_1", "Tom Jones", persistence.GuestAdult, "P555666888", persistence.GenderMale, "1986-07-12", "Spouse", "Architect", "TM888889"},
			member{"G_JJ_1", "Jerry Jones", persistence.GuestChild, "P555666999", persistence.GenderMale, "2018-02-20", "Child", "Student", "TM888890"},
		),
		family(persistence.Customer{
			ID: "C-DD-1", BookingID: "B10007", FullName: "David Davis", Email: "david.davis@example.com",
			Nationality: "Canadian", PassportID: "P_DD_123", DOB: "1982-11-20", Phone: "(555) 111-2222", Gender: persistence.GenderMale,
			GuestType: persistence.GuestAdult, CustomerStatus: persistence.CustomerVIP, ActivityStatus: persistence.ActivityActive,
			CurrentAddress: "100 Maple Drive, Toronto, CA",
			CheckInDate:    today, CheckOutDate: dates.AddDays(today, 4),
			RoomStays:     []persistence.RoomStay{{RoomNumber: "RM401", BookingStatus: persistence.BookingCheckedIn}},
			PaymentStatus: persistence.PaymentPaid, EmailStatus: persistence.EmailSent,
			Adults: 2, Children: 2,
			TotalPrice: decimal.NewFromInt(18000), VisaType: visaExempt, ExpireDateOfStay: "2025-12-31", PortOfEntry: suvarnabhumi,
			ArrivalCardNumber: "TM_DD_123", Relationship: "Family Head", TM30Status: persistence.TM30Acknowledged, Occupation: "Lawyer",
			ArrivingFrom: "Toronto, CA", GoingTo: "Phuket, Thailand", IssuedBy: "Govt. of Canada", Remarks: "Family vacation",
		},
			member{"G_SD_1", "Sarah Davis", persistence.GuestAdult, "P_SD_456", persistence.GenderFemale, "1984-03-15", "Spouse", "Manager", "TM_SD_456"},
			member{"G_KD_1", "Kevin Davis", persistence.GuestChild, "P_KD_789", persistence.GenderMale, "2014-08-30", "Child", "Student", "TM_KD_789"},
			member{"G_LD_1", "Lily Davis", persistence.GuestChild, "P_LD_101", persistence.GenderFemale, "2016-12-10", "Child", "Student", "TM_LD_101"},
		),
	}
}

// member is an accompanying guest of a scenario booking. Travel details
// are copied from the host booking by family.
type member struct {
	id           string
	name         string
	guestType    persistence.GuestType
	passport     string
	gender       persistence.Gender
	dob          string
	relationship string
	occupation   string
	card         string
}

func family(host persistence.Customer, members ...member) persistence.Customer {
	host.GuestList = make([]persistence.Guest, len(members))
	for i, m := range members {
		host.GuestList[i] = persistence.Guest{
			ID:                m.id,
			Name:              m.name,
			GuestType:         m.guestType,
			PassportID:        m.passport,
			Nationality:       host.Nationality,
			Gender:            m.gender,
			DOB:               m.dob,
			DateOfArrival:     host.CheckInDate,
			VisaType:          visaExempt,
			PortOfEntry:       suvarnabhumi,
			ArrivalCardNumber: m.card,
			ExpireDateOfStay:  host.ExpireDateOfStay,
			Relationship:      m.relationship,
			Occupation:        m.occupation,
			CurrentAddress:    host.CurrentAddress,
			ArrivingFrom:      host.ArrivingFrom,
			GoingTo:           host.GoingTo,
			IssuedBy:          host.IssuedBy,
		}
	}
	return host
}
