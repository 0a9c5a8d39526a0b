package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/listview"
	"github.com/example/frontdesk/internal/navigation"
)

// Config captures environment driven configuration values for the front
// desk.
type Config struct {
	PageSize        int
	HighlightWindow time.Duration
	NoticeWindow    time.Duration
	LogLevel        slog.Level
	// Today pins the desk calendar to a fixed date. Zero means the wall
	// clock.
	Today time.Time
}

// Load parses configuration values from the current process environment.
//
// Every variable is optional. Defaults apply to unset variables and every
// unparsable value is reported in a single error.
func Load() (Config, error) {
	cfg := Config{
		PageSize:        listview.DefaultPageSize,
		HighlightWindow: navigation.DefaultHighlightWindow,
		NoticeWindow:    navigation.DefaultNoticeWindow,
		LogLevel:        slog.LevelInfo,
	}

	invalid := make([]string, 0, 2)

	if value := strings.TrimSpace(os.Getenv("FRONTDESK_PAGE_SIZE")); value != "" {
		size, err := strconv.Atoi(value)
		if err != nil || size <= 0 {
			invalid = append(invalid, "FRONTDESK_PAGE_SIZE")
		} else {
			cfg.PageSize = size
		}
	}

	if d, ok, err := duration("FRONTDESK_HIGHLIGHT_WINDOW"); err != nil {
		invalid = append(invalid, "FRONTDESK_HIGHLIGHT_WINDOW")
	} else if ok {
		cfg.HighlightWindow = d
	}

	if d, ok, err := duration("FRONTDESK_NOTICE_WINDOW"); err != nil {
		invalid = append(invalid, "FRONTDESK_NOTICE_WINDOW")
	} else if ok {
		cfg.NoticeWindow = d
	}

	if value := strings.TrimSpace(os.Getenv("FRONTDESK_LOG_LEVEL")); value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			invalid = append(invalid, "FRONTDESK_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if value := strings.TrimSpace(os.Getenv("FRONTDESK_TODAY")); value != "" {
		today, ok := dates.Parse(value)
		if !ok {
			invalid = append(invalid, "FRONTDESK_TODAY")
		} else {
			cfg.Today = dates.StartOfDay(today)
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func duration(key string) (time.Duration, bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return 0, false, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, false, err
	}
	if d <= 0 {
		return 0, false, fmt.Errorf("%s must be positive", key)
	}
	return d, true, nil
}

// Clock returns the time source for the desk. With Today set, the date is
// pinned and the time of day follows the wall clock.
func (c Config) Clock() func() time.Time {
	if c.Today.IsZero() {
		return time.Now
	}
	today := c.Today
	return func() time.Time {
		now := time.Now().UTC()
		return today.Add(now.Sub(dates.StartOfDay(now)))
	}
}
