// Package timezone pins booking times to the office timezone (APP_TIMEZONE).
// Form inputs such as "2026-01-05T08:30" carry no offset and are read in it.
package timezone

import (
	"sync/atomic"
	"time"

	"corpbooking/config"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "UTC"

var appLocation atomic.Pointer[time.Location]

func init() {
	if err := SetLocation(config.Get().App.Timezone); err != nil {
		log.Error().Err(err).Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'Asia/Jakarta'")
	}
}

// SetLocation switches the application timezone. An empty name means UTC.
// On error the location falls back to UTC.
func SetLocation(name string) error {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = defaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		appLocation.Store(time.UTC)

		return err //nolint:wrapcheck
	}

	appLocation.Store(loc)

	log.Debug().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return nil
}

// GetLocation returns the application timezone.
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads a wall clock value in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
