package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/frontdesk/internal/application"
	"github.com/example/frontdesk/internal/config"
	"github.com/example/frontdesk/internal/logging"
	"github.com/example/frontdesk/internal/navigation"
	"github.com/example/frontdesk/internal/persistence/memory"
	"github.com/example/frontdesk/internal/seed"
)

func main() {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := logging.New(stderr, cfg.LogLevel)

	d, err := openDesk(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open front desk", "error", err)
		return err
	}
	defer d.Close()

	root := newRootCommand(d)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(logging.ContextWithLogger(ctx, logger))
}

// desk is the seeded store plus the services the commands read from.
type desk struct {
	now          func() time.Time
	store        *memory.Store
	views        *application.Views
	bookings     *application.BookingService
	rooms        *application.RoomService
	customers    *application.CustomerService
	roles        *application.RoleService
	noticeWindow time.Duration
	logger       *slog.Logger
}

func openDesk(ctx context.Context, cfg config.Config, logger *slog.Logger) (*desk, error) {
	now := cfg.Clock()
	store := memory.New()
	data := seed.Build(now())
	if err := seed.Load(ctx, store, data); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}
	logger.Debug("store seeded",
		"rooms", len(data.Rooms),
		"bookings", len(data.Bookings),
		"users", len(data.Users),
		"revision", store.Revision(),
	)

	return &desk{
		now:          now,
		store:        store,
		views:        application.NewViewsWithLogger(store, navigation.RealScheduler{}, cfg.HighlightWindow, cfg.PageSize, now, logger),
		bookings:     application.NewBookingServiceWithLogger(store, application.NewUUID, now, logger),
		rooms:        application.NewRoomServiceWithLogger(store, application.NewUUID, now, logger),
		customers:    application.NewCustomerServiceWithLogger(store, logger),
		roles:        application.NewRoleServiceWithLogger(store, application.NewUUID, logger),
		noticeWindow: cfg.NoticeWindow,
		logger:       logger,
	}, nil
}

func (d *desk) Close() {
	d.views.Close()
}
