package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/frontdesk/internal/application"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FRONTDESK_TODAY", "2024-06-15")
	t.Setenv("FRONTDESK_PAGE_SIZE", "50")
	t.Setenv("FRONTDESK_HIGHLIGHT_WINDOW", "")
	t.Setenv("FRONTDESK_NOTICE_WINDOW", "")
	t.Setenv("FRONTDESK_LOG_LEVEL", "warn")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func lineContaining(out, needle string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	return ""
}

func TestRun_Dashboard(t *testing.T) {
	out, _, err := execute(t, "dashboard")
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if !strings.Contains(out, "Today 15/06/2024") {
		t.Fatalf("expected pinned date in output, got:\n%s", out)
	}
	if !strings.Contains(out, "\n45 ") {
		t.Fatalf("expected 45 rooms in the counters, got:\n%s", out)
	}
	if !strings.Contains(out, "Katie Jones") {
		t.Fatalf("expected today's arrival in recent check-ins, got:\n%s", out)
	}
}

func TestRun_BookingsList(t *testing.T) {
	t.Run("highlight marks the target row", func(t *testing.T) {
		out, _, err := execute(t, "bookings", "list", "--highlight", "C-KJ-1-RM105")
		if err != nil {
			t.Fatalf("bookings list failed: %v", err)
		}
		line := lineContaining(out, "C-KJ-1-RM105")
		if !strings.HasPrefix(line, "*") {
			t.Fatalf("expected highlighted row, got %q", line)
		}
		if !strings.Contains(lineContaining(out, "C-DD-1-RM401"), "unknown room") {
			t.Fatalf("expected dangling room label, got:\n%s", out)
		}
	})

	t.Run("missing highlight target is reported", func(t *testing.T) {
		out, _, err := execute(t, "bookings", "list", "--highlight", "C-NOPE-RM999")
		if err != nil {
			t.Fatalf("bookings list failed: %v", err)
		}
		if !strings.Contains(out, "Row C-NOPE-RM999 not found.") {
			t.Fatalf("expected not found notice, got:\n%s", out)
		}
	})

	t.Run("status filter and search", func(t *testing.T) {
		out, _, err := execute(t, "bookings", "list", "--status", "checked-out", "--search", "john smith")
		if err != nil {
			t.Fatalf("bookings list failed: %v", err)
		}
		if !strings.Contains(out, "(11 entries)") {
			t.Fatalf("expected eleven past stays, got:\n%s", out)
		}
	})

	t.Run("unknown status filter", func(t *testing.T) {
		_, _, err := execute(t, "bookings", "list", "--status", "Lost")
		if err == nil || !strings.Contains(err.Error(), "unknown status filter") {
			t.Fatalf("expected filter error, got %v", err)
		}
	})
}

func TestRun_BookingsShowAndAvailable(t *testing.T) {
	out, _, err := execute(t, "bookings", "show", "B10006")
	if err != nil {
		t.Fatalf("bookings show failed: %v", err)
	}
	for _, want := range []string{"Katie Jones", "Tom Jones", "Jerry Jones", "9000.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "bookings", "available", "--check-in", "2024-06-15", "--check-out", "2024-06-17")
	if err != nil {
		t.Fatalf("bookings available failed: %v", err)
	}
	if lineContaining(out, "RM203 ") != "" {
		t.Fatalf("expected occupied RM203 to be excluded:\n%s", out)
	}

	_, _, err = execute(t, "bookings", "available", "--check-in", "2024-06-15", "--check-out", "2024-06-15")
	if err == nil {
		t.Fatalf("expected same-day window to be rejected")
	}
}

func TestRun_BookingsEdit(t *testing.T) {
	t.Run("changed value is saved", func(t *testing.T) {
		out, _, err := execute(t, "bookings", "edit", "B10006", "occupation", "Architect")
		if err != nil {
			t.Fatalf("bookings edit failed: %v", err)
		}
		if !strings.Contains(out, "Occupation updated") || !strings.Contains(out, "Occupation: Architect") {
			t.Fatalf("expected save notice and new value, got:\n%s", out)
		}
	})

	t.Run("equal number is not written", func(t *testing.T) {
		out, _, err := execute(t, "bookings", "edit", "B10006", "totalPrice", "9000.00")
		if err != nil {
			t.Fatalf("bookings edit failed: %v", err)
		}
		if !strings.Contains(out, "Total price unchanged.") {
			t.Fatalf("expected unchanged report, got:\n%s", out)
		}
	})

	t.Run("rejected value reports the failure", func(t *testing.T) {
		out, _, err := execute(t, "bookings", "edit", "B10006", "email", "not-an-email")
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if !strings.Contains(out, "Could not update Email") {
			t.Fatalf("expected error notice, got:\n%s", out)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, err := execute(t, "bookings", "edit", "B10006", "bookingId", "X")
		if err == nil || !strings.Contains(err.Error(), "cannot be edited") {
			t.Fatalf("expected field error, got %v", err)
		}
	})
}

func TestRun_RoomsShowLogsCommand(t *testing.T) {
	_, stderr, err := execute(t, "rooms", "show", "RM401")
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(stderr, `"command":"frontdesk rooms show"`) {
		t.Fatalf("expected command attribute in log, got:\n%s", stderr)
	}
}

func TestRun_CustomersHistory(t *testing.T) {
	out, _, err := execute(t, "customers", "history", "j.smith@example.com")
	if err != nil {
		t.Fatalf("customers history failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected header plus 12 bookings, got %d lines:\n%s", len(lines), out)
	}

	_, _, err = execute(t, "customers", "history", "nobody@example.com")
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRun_UsersAndRoles(t *testing.T) {
	out, _, err := execute(t, "users", "list", "--role", "super admin")
	if err != nil {
		t.Fatalf("users list failed: %v", err)
	}
	if !strings.Contains(out, "admin@horizon.com") {
		t.Fatalf("expected admin account, got:\n%s", out)
	}

	out, _, err = execute(t, "roles", "list")
	if err != nil {
		t.Fatalf("roles list failed: %v", err)
	}
	for _, want := range []string{"Super Admin", "Receptionist", "Cleaner"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected role %q, got:\n%s", want, out)
		}
	}
}

func TestRun_InvalidConfiguration(t *testing.T) {
	t.Setenv("FRONTDESK_PAGE_SIZE", "many")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"dashboard"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "FRONTDESK_PAGE_SIZE") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
