package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/frontdesk/internal/application"
	"github.com/example/frontdesk/internal/navigation"
	"github.com/example/frontdesk/internal/persistence"
	"github.com/example/frontdesk/internal/projection"
	"github.com/example/frontdesk/internal/testfixtures"
)

func bookingScreenHarness(t *testing.T) *testfixtures.StoreHarness {
	t.Helper()
	return testfixtures.NewStoreHarness(t).
		Rooms(
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM101")).Persistence(),
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM102")).Persistence(),
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM103")).Persistence(),
		).
		Bookings(
			testfixtures.NewBookingFixture(testfixtures.WithBookingID("b1"), testfixtures.WithBookingName("Alice Smith"),
				testfixtures.WithStay("RM101", persistence.BookingConfirmed)).Persistence(),
			testfixtures.NewBookingFixture(testfixtures.WithBookingID("b2"), testfixtures.WithBookingName("Bob Brown"),
				testfixtures.WithStay("RM102", persistence.BookingCancelled)).Persistence(),
			testfixtures.NewBookingFixture(testfixtures.WithBookingID("b3"), testfixtures.WithBookingName("Carol White"),
				testfixtures.WithBookingDates("2024-02-10", "2024-02-12"),
				testfixtures.WithRoomStays(
					persistence.RoomStay{RoomNumber: "RM103", BookingStatus: persistence.BookingCheckedIn},
					persistence.RoomStay{RoomNumber: "RM404", BookingStatus: persistence.BookingConfirmed},
				)).Persistence(),
		)
}

func TestViews_Bookings(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by status", func(t *testing.T) {
		f := newServiceFactory(withStore(bookingScreenHarness(t).Store))
		views := f.NewViews()
		defer views.Close()

		page, err := views.Bookings(ctx, application.BookingQuery{})
		if err != nil {
			t.Fatalf("Bookings failed: %v", err)
		}
		if page.Total != 3 {
			t.Fatalf("expected 3 current rows, got %d", page.Total)
		}

		page, _ = views.Bookings(ctx, application.BookingQuery{Status: application.BookingFilterAll})
		if page.Total != 4 {
			t.Fatalf("expected 4 rows in total, got %d", page.Total)
		}

		page, _ = views.Bookings(ctx, application.BookingQuery{Status: application.BookingFilter(persistence.BookingCancelled)})
		if page.Total != 1 || page.Rows[0].RowID != "b2-RM102" {
			t.Fatalf("unexpected cancelled rows %+v", page.Rows)
		}
	})

	t.Run("searches names and bounds check-in dates", func(t *testing.T) {
		f := newServiceFactory(withStore(bookingScreenHarness(t).Store))
		views := f.NewViews()
		defer views.Close()

		page, _ := views.Bookings(ctx, application.BookingQuery{Search: "CAROL"})
		if page.Total != 2 {
			t.Fatalf("expected both stays of Carol, got %d", page.Total)
		}

		page, _ = views.Bookings(ctx, application.BookingQuery{From: "2024-02-01"})
		if page.Total != 2 {
			t.Fatalf("expected February check-ins only, got %d", page.Total)
		}
	})

	t.Run("labels rooms and flags dangling codes", func(t *testing.T) {
		f := newServiceFactory(withStore(bookingScreenHarness(t).Store))
		views := f.NewViews()
		defer views.Close()

		page, _ := views.Bookings(ctx, application.BookingQuery{Search: "carol"})
		labels := map[string]string{}
		for _, row := range page.Rows {
			labels[row.RoomNumber] = row.RoomLabel
		}
		if labels["RM103"] != "RM103 (Standard)" || labels["RM404"] != projection.UnknownRoom {
			t.Fatalf("unexpected labels %v", labels)
		}
	})

	t.Run("navigates to and highlights a new row", func(t *testing.T) {
		h := bookingScreenHarness(t)
		f := newServiceFactory(withStore(h.Store), withPageSize(2))
		views := f.NewViews()
		defer views.Close()

		req := navigation.Highlight("b3-RM404")
		page, err := views.Bookings(ctx, application.BookingQuery{Navigate: req})
		if err != nil {
			t.Fatalf("Bookings failed: %v", err)
		}
		if !page.Resolution.Found || page.Page != 2 {
			t.Fatalf("expected to land on page 2, got %+v (page %d)", page.Resolution, page.Page)
		}
		if req.Target != "" {
			t.Fatalf("expected the request to be consumed")
		}
		if !views.Highlighter(application.ScreenBookings).IsHighlighted("b3-RM404") {
			t.Fatalf("expected row to be highlighted")
		}

		page, _ = views.Bookings(ctx, application.BookingQuery{Navigate: req})
		if page.Page != 1 || page.Resolution.Found {
			t.Fatalf("expected a consumed request to be ignored, got page %d", page.Page)
		}

		f.Clock.Advance(navigation.DefaultHighlightWindow)
		if views.Highlighter(application.ScreenBookings).Target() != "" {
			t.Fatalf("expected highlight to expire")
		}
	})

	t.Run("drops the highlight when its row disappears", func(t *testing.T) {
		h := bookingScreenHarness(t)
		f := newServiceFactory(withStore(h.Store))
		views := f.NewViews()
		defer views.Close()

		if _, err := views.Bookings(ctx, application.BookingQuery{Navigate: navigation.Highlight("b1-RM101")}); err != nil {
			t.Fatalf("Bookings failed: %v", err)
		}
		if err := h.Store.RemoveBooking(ctx, "b1"); err != nil {
			t.Fatalf("RemoveBooking failed: %v", err)
		}
		page, _ := views.Bookings(ctx, application.BookingQuery{})
		if page.Total != 2 {
			t.Fatalf("expected the cached rows to refresh, got %d", page.Total)
		}
		if views.Highlighter(application.ScreenBookings).Target() != "" {
			t.Fatalf("expected highlight to be dropped")
		}
	})

	t.Run("other screens keep their own highlight", func(t *testing.T) {
		h := bookingScreenHarness(t)
		f := newServiceFactory(withStore(h.Store))
		views := f.NewViews()
		defer views.Close()

		if _, err := views.Bookings(ctx, application.BookingQuery{Navigate: navigation.Highlight("b1-RM101")}); err != nil {
			t.Fatalf("Bookings failed: %v", err)
		}
		if _, err := views.Rooms(ctx, application.RoomQuery{}); err != nil {
			t.Fatalf("Rooms failed: %v", err)
		}
		if _, err := views.Customers(ctx, application.CustomerQuery{}); err != nil {
			t.Fatalf("Customers failed: %v", err)
		}
		if !views.Highlighter(application.ScreenBookings).IsHighlighted("b1-RM101") {
			t.Fatalf("expected the bookings highlight to survive other screens")
		}
		if views.Highlighter(application.ScreenRooms).Target() != "" {
			t.Fatalf("expected the rooms screen to have no highlight")
		}
	})

	t.Run("unknown targets leave the page alone", func(t *testing.T) {
		f := newServiceFactory(withStore(bookingScreenHarness(t).Store))
		views := f.NewViews()
		defer views.Close()

		page, _ := views.Bookings(ctx, application.BookingQuery{Navigate: navigation.Highlight("zz-RM000")})
		if page.Resolution.Found || page.Resolution.Target != "zz-RM000" || page.Page != 1 {
			t.Fatalf("unexpected resolution %+v", page.Resolution)
		}
	})
}

func TestViews_Rooms(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewStoreHarness(t).
		Rooms(
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM100"), testfixtures.WithRoomFloor("1st Floor")).Persistence(),
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM9"), testfixtures.WithRoomFloor("1st Floor")).Persistence(),
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM10"), testfixtures.WithRoomFloor("10th Floor"),
				testfixtures.WithRoomType(persistence.RoomDeluxe), testfixtures.WithRoomStatus(persistence.RoomOccupied)).Persistence(),
		).
		Bookings(testfixtures.NewBookingFixture(testfixtures.WithBookingName("Dana Grey"),
			testfixtures.WithStay("RM10", persistence.BookingCheckedIn)).Persistence())
	views := newServiceFactory(withStore(h.Store)).NewViews()
	defer views.Close()

	page, err := views.Rooms(ctx, application.RoomQuery{})
	if err != nil {
		t.Fatalf("Rooms failed: %v", err)
	}
	var codes []string
	for _, row := range page.Rows {
		codes = append(codes, row.RoomCode)
	}
	if len(codes) != 3 || codes[0] != "RM9" || codes[1] != "RM10" || codes[2] != "RM100" {
		t.Fatalf("expected natural order, got %v", codes)
	}
	if page.Rows[1].GuestName != "Dana Grey" {
		t.Fatalf("expected live guest on RM10, got %q", page.Rows[1].GuestName)
	}

	page, _ = views.Rooms(ctx, application.RoomQuery{Floor: "1st Floor"})
	if page.Total != 2 {
		t.Fatalf("expected 2 rooms on the 1st floor, got %d", page.Total)
	}
	page, _ = views.Rooms(ctx, application.RoomQuery{Type: persistence.RoomDeluxe, Status: persistence.RoomOccupied})
	if page.Total != 1 || page.Rows[0].RoomCode != "RM10" {
		t.Fatalf("unexpected filtered rooms %+v", page.Rows)
	}
	page, _ = views.Rooms(ctx, application.RoomQuery{Search: "rm10"})
	if page.Total != 2 {
		t.Fatalf("expected substring search to match RM10 and RM100, got %d", page.Total)
	}

	floors, err := views.Floors(ctx)
	if err != nil {
		t.Fatalf("Floors failed: %v", err)
	}
	if len(floors) != 2 || floors[0] != "1st Floor" || floors[1] != "10th Floor" {
		t.Fatalf("unexpected floors %v", floors)
	}
}

func TestViews_Customers(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewStoreHarness(t).Bookings(
		testfixtures.NewBookingFixture(testfixtures.WithBookingEmail("a@example.com"), testfixtures.WithBookingName("Ann Old"),
			testfixtures.WithBookingDates("2023-01-01", "2023-01-02")).Persistence(),
		testfixtures.NewBookingFixture(testfixtures.WithBookingEmail("a@example.com"), testfixtures.WithBookingName("Ann New"),
			testfixtures.WithBookingPassport("X123")).Persistence(),
		testfixtures.NewBookingFixture(testfixtures.WithBookingEmail("b@example.com"), testfixtures.WithBookingName("Ben")).Persistence(),
	)
	views := newServiceFactory(withStore(h.Store)).NewViews()
	defer views.Close()

	page, err := views.Customers(ctx, application.CustomerQuery{})
	if err != nil {
		t.Fatalf("Customers failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected one row per email, got %d", page.Total)
	}
	if page.Rows[0].FullName != "Ann New" || page.Rows[0].BookingCount != 2 {
		t.Fatalf("expected latest booking to represent the customer, got %+v", page.Rows[0])
	}

	page, _ = views.Customers(ctx, application.CustomerQuery{Search: "x12"})
	if page.Total != 1 || page.Rows[0].Email != "a@example.com" {
		t.Fatalf("expected passport search to match, got %+v", page.Rows)
	}

	page, _ = views.Customers(ctx, application.CustomerQuery{Navigate: navigation.Highlight("b@example.com")})
	if !page.Resolution.Found || !views.Highlighter(application.ScreenCustomers).IsHighlighted("b@example.com") {
		t.Fatalf("expected customer row to be highlighted, got %+v", page.Resolution)
	}
}

func TestViews_Users(t *testing.T) {
	ctx := context.Background()
	manager := testfixtures.NewRole("Manager")
	h := testfixtures.NewStoreHarness(t).
		Roles(manager).
		Users(
			testfixtures.NewUser(testfixtures.WithUserID("u1"), testfixtures.WithUserName("Pim")),
			testfixtures.NewUser(testfixtures.WithUserID("u2"), testfixtures.WithUserName("Lek"), testfixtures.WithUserStatus(persistence.UserInactive)),
		).
		Assign(manager.ID, "u1")
	views := newServiceFactory(withStore(h.Store)).NewViews()
	defer views.Close()

	page, err := views.Users(ctx, application.UserQuery{})
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if page.Total != 2 || page.Rows[0].Role != "Manager" || page.Rows[1].Role != "" {
		t.Fatalf("unexpected users %+v", page.Rows)
	}

	page, _ = views.Users(ctx, application.UserQuery{Role: "manager"})
	if page.Total != 1 || page.Rows[0].ID != "u1" {
		t.Fatalf("unexpected role filter result %+v", page.Rows)
	}
	page, _ = views.Users(ctx, application.UserQuery{Status: persistence.UserInactive})
	if page.Total != 1 || page.Rows[0].ID != "u2" {
		t.Fatalf("unexpected status filter result %+v", page.Rows)
	}
}

func TestViews_Dashboard(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewStoreHarness(t).
		Rooms(
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM101"), testfixtures.WithRoomStatus(persistence.RoomOccupied)).Persistence(),
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM102")).Persistence(),
			testfixtures.NewRoomFixture(testfixtures.WithRoomCode("RM103"), testfixtures.WithRoomStatus(persistence.RoomCleaning)).Persistence(),
		).
		Bookings(
			testfixtures.NewBookingFixture(testfixtures.WithStay("RM101", persistence.BookingCheckedIn)).Persistence(),
			testfixtures.NewBookingFixture(testfixtures.WithBookingDates("2023-12-30", "2024-01-02"),
				testfixtures.WithStay("RM103", persistence.BookingCheckedOut)).Persistence(),
		)
	clock := testfixtures.NewClock(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	views := newServiceFactory(withStore(h.Store), withClock(clock)).NewViews()
	defer views.Close()

	board, err := views.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if board.Today != "2024-01-02" {
		t.Fatalf("unexpected today %s", board.Today)
	}
	want := projection.Stats{TotalRooms: 3, AvailableRooms: 1, OccupiedRooms: 1, TodaysCheckIns: 1, TodaysCheckOuts: 1}
	if board.Stats != want {
		t.Fatalf("expected %+v, got %+v", want, board.Stats)
	}
	if len(board.RecentCheckIns) != 1 || len(board.TodaysCheckOuts) != 1 {
		t.Fatalf("unexpected lists %d/%d", len(board.RecentCheckIns), len(board.TodaysCheckOuts))
	}
}

func TestViews_AvailableRooms(t *testing.T) {
	views := newServiceFactory(withStore(bookingScreenHarness(t).Store)).NewViews()
	defer views.Close()

	rooms, err := views.AvailableRooms(context.Background(), application.StayWindow{CheckIn: "2024-01-03", CheckOut: "2024-01-05"})
	if err != nil {
		t.Fatalf("AvailableRooms failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected RM102 and RM103, got %v", rooms)
	}
	for _, room := range rooms {
		if room.RoomCode == "RM101" {
			t.Fatalf("expected claimed room to be excluded")
		}
	}
}
