package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/frontdesk/internal/application"
	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/logging"
	"github.com/example/frontdesk/internal/navigation"
	"github.com/example/frontdesk/internal/persistence"
)

func newRootCommand(d *desk) *cobra.Command {
	root := &cobra.Command{
		Use:           "frontdesk",
		Short:         "Hotel front desk console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(logging.WithAttrs(cmd.Context(), "command", cmd.CommandPath()))
		},
	}

	bookings := &cobra.Command{Use: "bookings", Short: "Room stays and availability"}
	bookings.AddCommand(bookingsListCmd(d), bookingsShowCmd(d), bookingsEditCmd(d), bookingsAvailableCmd(d))

	rooms := &cobra.Command{Use: "rooms", Short: "Room inventory"}
	rooms.AddCommand(roomsListCmd(d), roomsShowCmd(d))

	customers := &cobra.Command{Use: "customers", Short: "Guests grouped by email"}
	customers.AddCommand(customersListCmd(d), customersHistoryCmd(d))

	report := &cobra.Command{Use: "report", Short: "Immigration reports"}
	report.AddCommand(reportRR4Cmd(d), reportTM30Cmd(d))

	users := &cobra.Command{Use: "users", Short: "Administrative accounts"}
	users.AddCommand(usersListCmd(d))

	roles := &cobra.Command{Use: "roles", Short: "Roles and permissions"}
	roles.AddCommand(rolesListCmd(d))

	root.AddCommand(dashboardCmd(d), bookings, rooms, customers, report, users, roles)
	return root
}

func dashboardCmd(d *desk) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's counters, arrivals and departures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := d.views.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			renderDashboard(cmd.OutOrStdout(), board)
			return nil
		},
	}
}

func bookingsListCmd(d *desk) *cobra.Command {
	var (
		q         application.BookingQuery
		status    string
		highlight string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List room stays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseBookingFilter(status)
			if err != nil {
				return err
			}
			q.Status = filter
			if highlight != "" {
				q.Navigate = navigation.Highlight(highlight)
			}
			page, err := d.views.Bookings(cmd.Context(), q)
			if err != nil {
				return err
			}
			renderBookings(cmd.OutOrStdout(), page, d.views.Highlighter(application.ScreenBookings))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", string(application.BookingFilterCurrent), "status filter: "+joinFilters(application.BookingFilters()))
	cmd.Flags().StringVar(&q.Search, "search", "", "match guest name")
	cmd.Flags().StringVar(&q.From, "from", "", "earliest check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.To, "to", "", "latest check-in date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().StringVar(&highlight, "highlight", "", "row id to jump to and mark")
	return cmd
}

func bookingsShowCmd(d *desk) *cobra.Command {
	return &cobra.Command{
		Use:   "show <booking-id>",
		Short: "Show one booking with its guests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			booking, err := d.bookings.Booking(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderBooking(cmd.OutOrStdout(), booking)
			return nil
		},
	}
}

func bookingsEditCmd(d *desk) *cobra.Command {
	var guest string
	cmd := &cobra.Command{
		Use:   "edit <booking-id> <field> <value>",
		Short: "Change one field of the booker or a guest",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			booking, err := d.bookings.Booking(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			notice := navigation.NewNotice(navigation.RealScheduler{}, d.noticeWindow)
			defer notice.Close()

			form, err := application.BookingDetailsForm(cmd.Context(), d.bookings, booking, guest, notice)
			if err != nil {
				return err
			}
			field, ok := form.Field(args[1])
			if !ok {
				return fmt.Errorf("field %q cannot be edited here", args[1])
			}
			field.Begin()
			field.Input(args[2])
			commitErr := field.Commit()

			if msg, shown := notice.Current(); shown {
				fmt.Fprintln(cmd.OutOrStdout(), msg.Text)
			} else if commitErr == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s unchanged.\n", field.Label())
			}
			if commitErr != nil {
				return commitErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field.Label(), field.Display())
			return nil
		},
	}
	cmd.Flags().StringVar(&guest, "guest", "", "guest id to edit instead of the booker")
	return cmd
}

func bookingsAvailableCmd(d *desk) *cobra.Command {
	var window application.StayWindow
	cmd := &cobra.Command{
		Use:   "available",
		Short: "List rooms free for a stay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dates.Nights(window.CheckIn, window.CheckOut) == 0 {
				return fmt.Errorf("check-out must be after check-in")
			}
			rooms, err := d.views.AvailableRooms(cmd.Context(), window)
			if err != nil {
				return err
			}
			renderRooms(cmd.OutOrStdout(), roomRows(rooms))
			return nil
		},
	}
	cmd.Flags().StringVar(&window.CheckIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&window.CheckOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")
	return cmd
}

func roomsListCmd(d *desk) *cobra.Command {
	var (
		q              application.RoomQuery
		roomType, stat string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rooms with their live guest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Type = persistence.RoomType(roomType)
			q.Status = persistence.RoomStatus(stat)
			page, err := d.views.Rooms(cmd.Context(), q)
			if err != nil {
				return err
			}
			renderRooms(cmd.OutOrStdout(), page.Rows)
			renderPager(cmd.OutOrStdout(), page.Result.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "match room code")
	cmd.Flags().StringVar(&q.Floor, "floor", "", `floor label, e.g. "1st Floor"`)
	cmd.Flags().StringVar(&roomType, "type", "", "room type")
	cmd.Flags().StringVar(&stat, "status", "", "room status")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	return cmd
}

func roomsShowCmd(d *desk) *cobra.Command {
	return &cobra.Command{
		Use:   "show <room-code>",
		Short: "Show a room and the guest holding it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := d.rooms.RoomDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderRoomDetails(cmd.OutOrStdout(), details)
			return nil
		},
	}
}

func customersListCmd(d *desk) *cobra.Command {
	var q application.CustomerQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unique customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := d.views.Customers(cmd.Context(), q)
			if err != nil {
				return err
			}
			renderCustomers(cmd.OutOrStdout(), page)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "match name or passport")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	return cmd
}

func customersHistoryCmd(d *desk) *cobra.Command {
	return &cobra.Command{
		Use:   "history <email>",
		Short: "List every booking made under an email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := d.customers.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), history)
			return nil
		},
	}
}

func reportFlags(cmd *cobra.Command, q *application.ReportQuery, week *bool) {
	cmd.Flags().StringVar(&q.Search, "search", "", "match traveler name")
	cmd.Flags().StringVar(&q.From, "from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.To, "to", "", "range end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(week, "week", false, "limit to the current Monday to Sunday week")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
}

func (d *desk) reportRange(q application.ReportQuery, week bool) application.ReportQuery {
	if week {
		q.From, q.To = dates.Week(d.now())
	}
	return q
}

func reportRR4Cmd(d *desk) *cobra.Command {
	var (
		q    application.ReportQuery
		week bool
	)
	cmd := &cobra.Command{
		Use:   "rr4",
		Short: "R.R.4 guest register by check-in date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := d.views.Report(cmd.Context(), d.reportRange(q, week))
			if err != nil {
				return err
			}
			renderRR4(cmd.OutOrStdout(), page)
			return nil
		},
	}
	reportFlags(cmd, &q, &week)
	return cmd
}

func reportTM30Cmd(d *desk) *cobra.Command {
	var (
		q    application.ReportQuery
		week bool
	)
	cmd := &cobra.Command{
		Use:   "tm30",
		Short: "TM.30 notification sheet by check-out date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := d.views.TM30(cmd.Context(), d.reportRange(q, week))
			if err != nil {
				return err
			}
			renderTM30(cmd.OutOrStdout(), page)
			return nil
		},
	}
	reportFlags(cmd, &q, &week)
	return cmd
}

func usersListCmd(d *desk) *cobra.Command {
	var (
		q      application.UserQuery
		status string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List administrative accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Status = persistence.UserStatus(status)
			page, err := d.views.Users(cmd.Context(), q)
			if err != nil {
				return err
			}
			renderUsers(cmd.OutOrStdout(), page)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "match name or email")
	cmd.Flags().StringVar(&q.Role, "role", "", "role name")
	cmd.Flags().StringVar(&status, "status", "", "account status")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	return cmd
}

func rolesListCmd(d *desk) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roles with member counts and grants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := d.roles.Roles(cmd.Context())
			if err != nil {
				return err
			}
			renderRoles(cmd.OutOrStdout(), roles)
			return nil
		},
	}
}

func parseBookingFilter(value string) (application.BookingFilter, error) {
	for _, filter := range application.BookingFilters() {
		if strings.EqualFold(string(filter), strings.TrimSpace(value)) {
			return filter, nil
		}
	}
	return "", fmt.Errorf("unknown status filter %q (want one of %s)", value, joinFilters(application.BookingFilters()))
}

func joinFilters(filters []application.BookingFilter) string {
	names := make([]string, len(filters))
	for i, filter := range filters {
		names[i] = string(filter)
	}
	return strings.Join(names, ", ")
}
