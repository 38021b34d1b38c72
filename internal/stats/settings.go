package stats

import (
	"strings"
	"time"
	_ "time/tzdata"

	errorvalues "github.com/limbo/healthlog/internal/error_values"
)

const DefaultStreakHorizon = 365

// Settings holds the calendar configuration shared by every computation.
// It is built once at startup.
type Settings struct {
	Location *time.Location
	// Maximum number of days the streak walk may cover
	StreakHorizon int
}

// NewSettings resolves an IANA time zone name. An empty name means UTC.
// "Local" is rejected: the zone must not depend on the host.
func NewSettings(timeZone string, streakHorizon int) (Settings, error) {
	name := strings.TrimSpace(timeZone)
	if strings.EqualFold(name, "Local") {
		return Settings{}, &errorvalues.ConfigurationError{Key: "STATS_TIME_ZONE", Reason: "host local time zone is not allowed"}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Settings{}, &errorvalues.ConfigurationError{Key: "STATS_TIME_ZONE", Reason: "unknown time zone " + timeZone}
	}
	if streakHorizon <= 0 {
		return Settings{}, &errorvalues.ConfigurationError{Key: "STATS_STREAK_HORIZON_DAYS", Reason: "must be positive"}
	}
	return Settings{Location: loc, StreakHorizon: streakHorizon}, nil
}

func DefaultSettings() Settings {
	return Settings{Location: time.UTC, StreakHorizon: DefaultStreakHorizon}
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s Settings) horizon() int {
	if s.StreakHorizon <= 0 {
		return DefaultStreakHorizon
	}
	return s.StreakHorizon
}
