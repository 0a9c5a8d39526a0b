package application_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/example/frontdesk/internal/application"
	"github.com/example/frontdesk/internal/navigation"
	"github.com/example/frontdesk/internal/persistence/memory"
	"github.com/example/frontdesk/internal/testfixtures"
)

// fastArgon2Params keeps password hashing cheap in tests.
var fastArgon2Params = application.Argon2idParams{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  8,
	KeyLength:   16,
}

// serviceFactory assists tests with constructing application services using
// deterministic identifiers and clocks over one shared store.
type serviceFactory struct {
	Clock       *testfixtures.Clock
	IDGenerator *testfixtures.IDGenerator
	Store       *memory.Store
	Logger      *slog.Logger
	PageSize    int
}

// factoryOption configures a serviceFactory instance.
type factoryOption func(*serviceFactory)

// newServiceFactory constructs a serviceFactory with defaults.
func newServiceFactory(opts ...factoryOption) *serviceFactory {
	factory := &serviceFactory{
		Clock:       testfixtures.NewClock(time.Time{}),
		IDGenerator: testfixtures.NewIDGenerator("id"),
		Store:       memory.New(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = testfixtures.NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = testfixtures.NewIDGenerator("id")
	}
	if factory.Store == nil {
		factory.Store = memory.New()
	}
	return factory
}

// withClock overrides the clock used by the factory.
func withClock(clock *testfixtures.Clock) factoryOption {
	return func(factory *serviceFactory) {
		factory.Clock = clock
	}
}

// withStore makes the services share an existing store, usually one filled
// through a StoreHarness.
func withStore(store *memory.Store) factoryOption {
	return func(factory *serviceFactory) {
		factory.Store = store
	}
}

// withLogger routes service logs to logger.
func withLogger(logger *slog.Logger) factoryOption {
	return func(factory *serviceFactory) {
		factory.Logger = logger
	}
}

// withPageSize sets the page size of the list views.
func withPageSize(size int) factoryOption {
	return func(factory *serviceFactory) {
		factory.PageSize = size
	}
}

// NewBookingService builds a booking service over the factory store.
func (f *serviceFactory) NewBookingService() *application.BookingService {
	return application.NewBookingServiceWithLogger(f.Store, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), f.Logger)
}

// NewRoomService builds a room service over the factory store.
func (f *serviceFactory) NewRoomService() *application.RoomService {
	return application.NewRoomServiceWithLogger(f.Store, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), f.Logger)
}

// NewCustomerService builds a customer service over the factory store.
func (f *serviceFactory) NewCustomerService() *application.CustomerService {
	return application.NewCustomerServiceWithLogger(f.Store, f.Logger)
}

// NewAccountService builds an account service with cheap password hashing.
func (f *serviceFactory) NewAccountService() *application.AccountService {
	return application.NewAccountServiceWithLogger(f.Store, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), fastArgon2Params, f.Logger)
}

// NewRoleService builds a role service over the factory store.
func (f *serviceFactory) NewRoleService() *application.RoleService {
	return application.NewRoleServiceWithLogger(f.Store, f.IDGenerator.NextFunc(), f.Logger)
}

// NewViews builds the list queries with highlighters driven by the
// factory clock.
func (f *serviceFactory) NewViews() *application.Views {
	return application.NewViewsWithLogger(f.Store, f.Clock, navigation.DefaultHighlightWindow, f.PageSize, f.Clock.NowFunc(), f.Logger)
}
