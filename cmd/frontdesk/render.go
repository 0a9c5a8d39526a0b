package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/frontdesk/internal/application"
	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/navigation"
	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/projection"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprint(cell)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func renderPager(w io.Writer, page, totalPages, total int) {
	if total == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	fmt.Fprintf(w, "Page %d of %d (%d entries)\n", page, totalPages, total)
}

func renderDashboard(w io.Writer, board application.Dashboard) {
	fmt.Fprintf(w, "Today %s\n\n", dates.FormatDDMMYYYY(board.Today))

	tw := newTable(w, "TOTAL ROOMS", "AVAILABLE", "OCCUPIED", "CHECK-INS", "CHECK-OUTS")
	s := board.Stats
	row(tw, s.TotalRooms, s.AvailableRooms, s.OccupiedRooms, s.TodaysCheckIns, s.TodaysCheckOuts)
	tw.Flush()

	fmt.Fprintln(w, "\nRecent check-ins")
	renderStays(w, board.RecentCheckIns)
	fmt.Fprintln(w, "\nToday's check-outs")
	renderStays(w, board.TodaysCheckOuts)
}

func renderStays(w io.Writer, rows []projection.FlatRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "None.")
		return
	}
	tw := newTable(w, "ROOM", "GUEST", "CHECK-IN", "CHECK-OUT", "STATUS")
	for _, r := range rows {
		row(tw, r.RoomNumber, r.Booking.FullName,
			dates.FormatDDMMYYYY(r.Booking.CheckInDate), dates.FormatDDMMYYYY(r.Booking.CheckOutDate), r.BookingStatus)
	}
	tw.Flush()
}

func completenessMark(c projection.Completeness) string {
	switch c {
	case projection.CompletenessComplete:
		return "complete"
	case projection.CompletenessIncomplete:
		return "incomplete"
	}
	return ""
}

func renderBookings(w io.Writer, page application.Page[application.BookingRow], highlighter *navigation.Highlighter) {
	tw := newTable(w, "", "ROW", "BOOKING", "GUEST", "ROOM", "CHECK-IN", "CHECK-OUT", "STATUS", "REGISTRATION")
	for _, r := range page.Rows {
		mark := ""
		if highlighter.IsHighlighted(r.RowID) {
			mark = "*"
		}
		row(tw, mark, r.RowID, r.Booking.BookingID, r.Booking.FullName, r.RoomLabel,
			dates.FormatDDMMYYYY(r.Booking.CheckInDate), dates.FormatDDMMYYYY(r.Booking.CheckOutDate),
			r.BookingStatus, completenessMark(r.Completeness))
	}
	tw.Flush()
	if res := page.Resolution; res.Target != "" && !res.Found {
		fmt.Fprintf(w, "Row %s not found.\n", res.Target)
	}
	renderPager(w, page.Result.Page, page.TotalPages, page.Total)
}

func renderBooking(w io.Writer, b persistence.Customer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Booking", b.BookingID)
	row(tw, "Guest", b.FullName)
	row(tw, "Email", b.Email)
	row(tw, "Passport", b.PassportID)
	row(tw, "Stay", dates.FormatDDMMYYYY(b.CheckInDate)+" - "+dates.FormatDDMMYYYY(b.CheckOutDate))
	row(tw, "Party", fmt.Sprintf("%d adults, %d children", b.Adults, b.Children))
	row(tw, "Total", b.TotalPrice.StringFixed(2))
	row(tw, "Payment", b.PaymentStatus)
	row(tw, "TM.30", b.TM30Status)
	tw.Flush()

	fmt.Fprintln(w, "\nRooms")
	tw = newTable(w, "ROOM", "STATUS")
	for _, stay := range b.RoomStays {
		row(tw, stay.RoomNumber, stay.BookingStatus)
	}
	tw.Flush()

	if len(b.GuestList) == 0 {
		return
	}
	fmt.Fprintln(w, "\nGuests")
	tw = newTable(w, "NAME", "TYPE", "PASSPORT", "NATIONALITY", "RELATIONSHIP")
	for _, g := range b.GuestList {
		row(tw, g.Name, g.GuestType, g.PassportID, g.Nationality, g.Relationship)
	}
	tw.Flush()
}

func roomRows(rooms []persistence.Room) []application.RoomRow {
	out := make([]application.RoomRow, len(rooms))
	for i, room := range rooms {
		out[i] = application.RoomRow{Room: room}
	}
	return out
}

func renderRooms(w io.Writer, rooms []application.RoomRow) {
	tw := newTable(w, "ROOM", "FLOOR", "TYPE", "BED", "PRICE", "STATUS", "GUEST", "CHECK-OUT")
	for _, r := range rooms {
		row(tw, r.RoomCode, r.Floor, r.Type, r.BedType, r.Price.StringFixed(2), r.Status,
			r.GuestName, dates.FormatDDMMYYYY(r.CheckOutDate))
	}
	tw.Flush()
}

func renderRoomDetails(w io.Writer, details application.RoomDetails) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	room := details.Room
	row(tw, "Room", details.Label)
	row(tw, "Floor", room.FloorAndView)
	row(tw, "Bed", room.BedType)
	row(tw, "Max occupancy", room.MaxOccupancy)
	row(tw, "Price", room.Price.StringFixed(2))
	row(tw, "Status", room.Status)
	if details.Occupied {
		row(tw, "Guest", details.Guest.FullName)
		row(tw, "Check-out", dates.FormatDDMMYYYY(details.Guest.CheckOutDate))
	}
	if room.InternalNotes != "" {
		row(tw, "Notes", room.InternalNotes)
	}
	tw.Flush()
}

func renderCustomers(w io.Writer, page application.Page[projection.UniqueCustomer]) {
	tw := newTable(w, "NAME", "EMAIL", "PASSPORT", "NATIONALITY", "BOOKINGS", "LAST STAY", "STATUS")
	for _, c := range page.Rows {
		row(tw, c.FullName, c.Email, c.PassportID, c.Nationality, c.BookingCount,
			dates.FormatDDMMYYYY(c.Latest.CheckInDate), c.Latest.CustomerStatus)
	}
	tw.Flush()
	renderPager(w, page.Result.Page, page.TotalPages, page.Total)
}

func renderHistory(w io.Writer, history []persistence.Customer) {
	tw := newTable(w, "BOOKING", "CHECK-IN", "CHECK-OUT", "ROOMS", "TOTAL", "PAYMENT")
	for _, b := range history {
		rooms := make([]string, len(b.RoomStays))
		for i, stay := range b.RoomStays {
			rooms[i] = stay.RoomNumber
		}
		row(tw, b.BookingID, dates.FormatDDMMYYYY(b.CheckInDate), dates.FormatDDMMYYYY(b.CheckOutDate),
			strings.Join(rooms, ", "), b.TotalPrice.StringFixed(2), b.PaymentStatus)
	}
	tw.Flush()
}

func renderRR4(w io.Writer, page application.Page[projection.ReportRow]) {
	tw := newTable(w, "CHECK-IN", "ROOM", "NAME", "NATIONALITY", "ID NUMBER", "OCCUPATION", "FROM", "TO", "CHECK-OUT")
	for _, r := range page.Rows {
		row(tw, r.CheckInDateTime, r.RoomNumber, r.FullName, r.Nationality, r.IDNumber,
			r.Occupation, r.ArrivingFrom, r.GoingTo, r.CheckOutDateTime)
	}
	tw.Flush()
	renderPager(w, page.Result.Page, page.TotalPages, page.Total)
}

func renderTM30(w io.Writer, page application.Page[projection.TM30Row]) {
	tw := newTable(w, "FIRST", "MIDDLE", "LAST", "GENDER", "PASSPORT", "NATIONALITY", "BIRTH", "CHECK-OUT", "PHONE")
	for _, r := range page.Rows {
		row(tw, r.FirstName, r.MiddleName, r.LastName, r.Gender, r.PassportID, r.Nationality,
			r.DOB, r.CheckOutDate, r.Phone)
	}
	tw.Flush()
	renderPager(w, page.Result.Page, page.TotalPages, page.Total)
}

func renderUsers(w io.Writer, page application.Page[application.UserRow]) {
	tw := newTable(w, "ID", "NAME", "EMAIL", "ROLE", "STATUS", "LAST LOGIN")
	for _, u := range page.Rows {
		row(tw, u.ID, u.Name, u.Email, u.Role, u.Status, u.LastLogin)
	}
	tw.Flush()
	renderPager(w, page.Result.Page, page.TotalPages, page.Total)
}

func renderRoles(w io.Writer, roles []application.RoleSummary) {
	tw := newTable(w, "ROLE", "MEMBERS", "GRANTS", "DESCRIPTION")
	for _, summary := range roles {
		row(tw, summary.Role.Name, summary.MemberCount, grantCount(summary.Role.Permissions), summary.Role.Description)
	}
	tw.Flush()
}

func grantCount(p persistence.Permissions) string {
	granted, total := 0, 0
	for _, module := range persistence.PermissionModules {
		for _, action := range persistence.ModuleActions[module] {
			total++
			if p.Allows(module, action) {
				granted++
			}
		}
	}
	return fmt.Sprintf("%d/%d", granted, total)
}
