package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/listview"
	"github.com/example/frontdesk/internal/navigation"
	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/projection"
)

// Page is one page of a list screen together with the outcome of any
// navigation request carried by the query.
type Page[T any] struct {
	listview.Result[T]
	Resolution navigation.Resolution
}

// BookingFilter is the status dropdown of the bookings screen.
type BookingFilter string

const (
	// BookingFilterCurrent keeps Confirmed and Checked-In stays.
	BookingFilterCurrent BookingFilter = "Current & Upcoming"
	BookingFilterAll     BookingFilter = "All"
)

// BookingFilters lists the dropdown entries in display order.
func BookingFilters() []BookingFilter {
	out := []BookingFilter{BookingFilterCurrent, BookingFilterAll}
	for _, status := range persistence.BookingStatuses {
		out = append(out, BookingFilter(status))
	}
	return out
}

// BookingQuery drives the bookings screen. From and To bound the check-in
// date.
type BookingQuery struct {
	Status   BookingFilter
	Search   string
	From     string
	To       string
	Page     int
	Navigate *navigation.Request
}

// BookingRow is one room stay on the bookings screen.
type BookingRow struct {
	projection.FlatRow
	RoomLabel    string
	Completeness projection.Completeness
}

// RoomQuery drives the rooms screen. Empty filters match everything.
type RoomQuery struct {
	Search   string
	Floor    string
	Type     persistence.RoomType
	Status   persistence.RoomStatus
	Page     int
	Navigate *navigation.Request
}

// RoomRow is one room with its live guest.
type RoomRow struct {
	persistence.Room
	GuestName    string
	CheckOutDate string
}

// CustomerQuery drives the customer list.
type CustomerQuery struct {
	Search   string
	Page     int
	Navigate *navigation.Request
}

// ReportQuery drives the R.R.4 and TM.30 screens. From and To bound the
// check-in date for R.R.4 and the check-out date for TM.30.
type ReportQuery struct {
	Search string
	From   string
	To     string
	Page   int
}

// UserQuery drives the user management screen.
type UserQuery struct {
	Search   string
	Role     string
	Status   persistence.UserStatus
	Page     int
	Navigate *navigation.Request
}

// UserRow is an account with the name of its role.
type UserRow struct {
	persistence.User
	Role string
}

// Dashboard is the landing screen summary.
type Dashboard struct {
	Today           string
	Stats           projection.Stats
	RecentCheckIns  []projection.FlatRow
	TodaysCheckOuts []projection.FlatRow
}

const recentCheckInLimit = 5

// Screen names a list screen that keeps its own row highlight.
type Screen string

const (
	ScreenBookings  Screen = "bookings"
	ScreenRooms     Screen = "rooms"
	ScreenCustomers Screen = "customers"
	ScreenUsers     Screen = "users"
)

// Screens lists every screen with a highlighter.
func Screens() []Screen {
	return []Screen{ScreenBookings, ScreenRooms, ScreenCustomers, ScreenUsers}
}

// Views answers the list screens. Projections are memoized per store
// revision; each screen owns its highlighter so reading one screen never
// clears another screen's highlight.
type Views struct {
	store        ViewStore
	cache        *projectionCache
	highlighters map[Screen]*navigation.Highlighter
	pageSize     int
	now          func() time.Time
	logger       *slog.Logger
}

// NewViews constructs the list screen queries.
func NewViews(store ViewStore, scheduler navigation.Scheduler, highlightWindow time.Duration, pageSize int, now func() time.Time) *Views {
	return NewViewsWithLogger(store, scheduler, highlightWindow, pageSize, now, nil)
}

// NewViewsWithLogger constructs the list screen queries with a specified logger.
// A nil scheduler uses navigation.RealScheduler.
func NewViewsWithLogger(store ViewStore, scheduler navigation.Scheduler, highlightWindow time.Duration, pageSize int, now func() time.Time, logger *slog.Logger) *Views {
	if pageSize <= 0 {
		pageSize = listview.DefaultPageSize
	}
	if now == nil {
		now = time.Now
	}
	if scheduler == nil {
		scheduler = navigation.RealScheduler{}
	}
	highlighters := make(map[Screen]*navigation.Highlighter, len(Screens()))
	for _, screen := range Screens() {
		highlighters[screen] = navigation.NewHighlighter(scheduler, highlightWindow)
	}
	return &Views{
		store:        store,
		cache:        newProjectionCache(0),
		highlighters: highlighters,
		pageSize:     pageSize,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

// Highlighter exposes the row highlight of screen, or nil for an unknown
// screen.
func (v *Views) Highlighter(screen Screen) *navigation.Highlighter { return v.highlighters[screen] }

// Close stops every highlight timer.
func (v *Views) Close() {
	for _, h := range v.highlighters {
		h.Close()
	}
}

func (v *Views) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, v.logger, "Views", operation, attrs...)
}

func (v *Views) snapshot(ctx context.Context) (persistence.Snapshot, error) {
	return cachedProjection(v.cache, "snapshot", v.store.Revision(), func() (persistence.Snapshot, error) {
		return v.store.Snapshot(ctx)
	})
}

func (v *Views) bookingRows(ctx context.Context) ([]BookingRow, error) {
	return cachedProjection(v.cache, "bookings", v.store.Revision(), func() ([]BookingRow, error) {
		snap, err := v.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		directory := projection.BuildRoomDirectory(snap.Rooms)
		flat := projection.FlattenByRoomStay(snap.Customers)
		rows := make([]BookingRow, len(flat))
		for i, row := range flat {
			rows[i] = BookingRow{
				FlatRow:      row,
				RoomLabel:    directory.Label(row.RoomNumber),
				Completeness: projection.DisplayComplete(row.Booking, row.BookingStatus),
			}
		}
		return rows, nil
	})
}

// Bookings lists room stays for the bookings screen. The default status
// filter is Current & Upcoming.
func (v *Views) Bookings(ctx context.Context, q BookingQuery) (page Page[BookingRow], err error) {
	defer v.logQuery(ctx, "Bookings", &err)

	rows, err := v.bookingRows(ctx)
	if err != nil {
		return
	}

	status := q.Status
	if status == "" {
		status = BookingFilterCurrent
	}
	pipeline := listview.Pipeline[BookingRow]{
		Filter: func(row BookingRow) bool {
			switch status {
			case BookingFilterCurrent:
				return row.BookingStatus.Active()
			case BookingFilterAll:
				return true
			}
			return string(row.BookingStatus) == string(status)
		},
		SearchFields: func(row BookingRow) []string { return []string{row.Booking.FullName} },
		DateField:    func(row BookingRow) string { return row.Booking.CheckInDate },
		PageSize:     v.pageSize,
	}

	h := v.highlighters[ScreenBookings]
	retainHighlight(h, rows, func(row BookingRow) string { return row.RowID })
	page = runPage(h, pipeline, rows, listview.Query{Search: q.Search, From: q.From, To: q.To, Page: q.Page}, q.Navigate,
		func(row BookingRow) string { return row.RowID })
	return
}

// Rooms lists the room inventory in natural room-code order with the guest
// currently checked in.
func (v *Views) Rooms(ctx context.Context, q RoomQuery) (page Page[RoomRow], err error) {
	defer v.logQuery(ctx, "Rooms", &err)

	rows, err := cachedProjection(v.cache, "rooms", v.store.Revision(), func() ([]RoomRow, error) {
		snap, err := v.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		occupancy := projection.BuildOccupancyIndex(snap.Customers)
		out := make([]RoomRow, len(snap.Rooms))
		for i, room := range snap.Rooms {
			out[i] = RoomRow{Room: room}
			if guest, ok := occupancy.Guest(room.RoomCode); ok {
				out[i].GuestName = guest.FullName
				out[i].CheckOutDate = guest.CheckOutDate
			}
		}
		return out, nil
	})
	if err != nil {
		return
	}

	pipeline := listview.Pipeline[RoomRow]{
		Filter: func(row RoomRow) bool {
			return (q.Floor == "" || row.Floor == q.Floor) &&
				(q.Type == "" || row.Type == q.Type) &&
				(q.Status == "" || row.Status == q.Status)
		},
		SearchFields: func(row RoomRow) []string { return []string{row.RoomCode} },
		Compare: func(a, b RoomRow) int {
			return listview.NaturalCompare(a.RoomCode, b.RoomCode)
		},
		PageSize: v.pageSize,
	}

	h := v.highlighters[ScreenRooms]
	retainHighlight(h, rows, func(row RoomRow) string { return row.ID })
	page = runPage(h, pipeline, rows, listview.Query{Search: q.Search, Page: q.Page}, q.Navigate,
		func(row RoomRow) string { return row.ID })
	return
}

// Floors lists the distinct floors for the rooms screen filter.
func (v *Views) Floors(ctx context.Context) ([]string, error) {
	snap, err := v.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return projection.FloorOptions(snap.Rooms), nil
}

// Customers lists one row per email address.
func (v *Views) Customers(ctx context.Context, q CustomerQuery) (page Page[projection.UniqueCustomer], err error) {
	defer v.logQuery(ctx, "Customers", &err)

	rows, err := cachedProjection(v.cache, "customers", v.store.Revision(), func() ([]projection.UniqueCustomer, error) {
		snap, err := v.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return projection.RollUpCustomers(snap.Customers), nil
	})
	if err != nil {
		return
	}

	pipeline := listview.Pipeline[projection.UniqueCustomer]{
		SearchFields: func(row projection.UniqueCustomer) []string {
			return []string{row.FullName, row.PassportID}
		},
		PageSize: v.pageSize,
	}

	key := func(row projection.UniqueCustomer) string { return row.ID }
	h := v.highlighters[ScreenCustomers]
	retainHighlight(h, rows, key)
	page = runPage(h, pipeline, rows, listview.Query{Search: q.Search, Page: q.Page}, q.Navigate, key)
	return
}

// Report lists the R.R.4 guest register for bookings checked in within the
// query range.
func (v *Views) Report(ctx context.Context, q ReportQuery) (page Page[projection.ReportRow], err error) {
	defer v.logQuery(ctx, "Report", &err)

	snap, err := v.snapshot(ctx)
	if err != nil {
		return
	}
	rows := projection.ReportRows(snap.Customers, dates.NewRange(q.From, q.To))
	pipeline := listview.Pipeline[projection.ReportRow]{
		SearchFields: func(row projection.ReportRow) []string { return []string{row.FullName} },
		PageSize:     v.pageSize,
	}
	page = Page[projection.ReportRow]{Result: pipeline.Run(rows, listview.Query{Search: q.Search, Page: q.Page})}
	return
}

// TM30 lists the TM.30 notification rows for bookings checking out within
// the query range.
func (v *Views) TM30(ctx context.Context, q ReportQuery) (page Page[projection.TM30Row], err error) {
	defer v.logQuery(ctx, "TM30", &err)

	snap, err := v.snapshot(ctx)
	if err != nil {
		return
	}
	rows := projection.TM30Rows(snap.Customers, dates.NewRange(q.From, q.To))
	pipeline := listview.Pipeline[projection.TM30Row]{
		SearchFields: func(row projection.TM30Row) []string {
			return []string{row.FirstName, row.LastName, row.PassportID}
		},
		PageSize: v.pageSize,
	}
	page = Page[projection.TM30Row]{Result: pipeline.Run(rows, listview.Query{Search: q.Search, Page: q.Page})}
	return
}

// Users lists accounts with their role name.
func (v *Views) Users(ctx context.Context, q UserQuery) (page Page[UserRow], err error) {
	defer v.logQuery(ctx, "Users", &err)

	users, err := v.store.ListUsers(ctx)
	if err != nil {
		return
	}
	rows := make([]UserRow, len(users))
	for i, user := range users {
		rows[i] = UserRow{User: user}
		role, roleErr := v.store.RoleOfUser(ctx, user.ID)
		switch {
		case roleErr == nil:
			rows[i].Role = role.Name
		case errors.Is(roleErr, persistence.ErrNotFound):
		default:
			err = roleErr
			return
		}
	}

	pipeline := listview.Pipeline[UserRow]{
		Filter: func(row UserRow) bool {
			return (q.Role == "" || strings.EqualFold(row.Role, q.Role)) &&
				(q.Status == "" || row.Status == q.Status)
		},
		SearchFields: func(row UserRow) []string { return []string{row.Name, row.Email} },
		PageSize:     v.pageSize,
	}

	key := func(row UserRow) string { return row.ID }
	page = runPage(v.highlighters[ScreenUsers], pipeline, rows, listview.Query{Search: q.Search, Page: q.Page}, q.Navigate, key)
	return
}

// Dashboard summarizes today's desk work.
func (v *Views) Dashboard(ctx context.Context) (board Dashboard, err error) {
	defer v.logQuery(ctx, "Dashboard", &err)

	snap, err := v.snapshot(ctx)
	if err != nil {
		return
	}
	today := dates.Format(v.now())
	board = Dashboard{
		Today:           today,
		Stats:           projection.DashboardStats(snap.Rooms, snap.Customers, today),
		RecentCheckIns:  projection.RecentCheckIns(snap.Customers, recentCheckInLimit),
		TodaysCheckOuts: projection.TodaysCheckOuts(snap.Customers, today),
	}
	return
}

// AvailableRooms lists rooms free for window on the new booking screen.
func (v *Views) AvailableRooms(ctx context.Context, window StayWindow) ([]persistence.Room, error) {
	snap, err := v.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return projection.AvailableRooms(projection.AvailabilityQuery{
		Rooms:                  snap.Rooms,
		Customers:              snap.Customers,
		CheckIn:                window.CheckIn,
		CheckOut:               window.CheckOut,
		RequireAvailableStatus: true,
	}), nil
}

func runPage[T any](h *navigation.Highlighter, pipeline listview.Pipeline[T], rows []T, q listview.Query, req *navigation.Request, key func(T) string) Page[T] {
	res, resolution := navigation.Apply(h, req, pipeline.Run(rows, q), key)
	return Page[T]{Result: res, Resolution: resolution}
}

// retainHighlight drops the highlight once its row is gone from the
// unfiltered list.
func retainHighlight[T any](h *navigation.Highlighter, rows []T, key func(T) string) {
	present := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		present[key(row)] = struct{}{}
	}
	h.Retain(func(k string) bool {
		_, ok := present[k]
		return ok
	})
}

func (v *Views) logQuery(ctx context.Context, operation string, errp *error) {
	logger := v.loggerWith(ctx, operation)
	if *errp != nil {
		logOutcome(ctx, logger, *errp, fmt.Sprintf("failed to query %s", strings.ToLower(operation)), "")
		return
	}
	logger.DebugContext(ctx, "query served")
}
