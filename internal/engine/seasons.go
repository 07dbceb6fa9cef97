// Season bookkeeping. Seasons are cosmetic: they name the day in logs and
// the chronicle but do not change production.
package engine

import "fmt"

// Season constants.
const (
	SeasonSpring = 0
	SeasonSummer = 1
	SeasonAutumn = 2
	SeasonWinter = 3
)

// DefaultDaysPerSeason is the length of one season in days.
const DefaultDaysPerSeason = 90

// SeasonName returns a human-readable season name.
func SeasonName(season uint8) string {
	switch season {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// SeasonOf returns the season index for a 1-based day.
func SeasonOf(day, daysPerSeason int) uint8 {
	if day < 1 || daysPerSeason < 1 {
		return SeasonSpring
	}
	return uint8(((day - 1) / daysPerSeason) % 4)
}

// Calendar formats a 1-based day as "Spring Day 3, Year 1".
func Calendar(day, daysPerSeason int) string {
	if day < 1 || daysPerSeason < 1 {
		return fmt.Sprintf("Day %d", day)
	}
	seasons := (day - 1) / daysPerSeason
	dayInSeason := (day-1)%daysPerSeason + 1
	year := seasons/4 + 1
	return fmt.Sprintf("%s Day %d, Year %d", SeasonName(uint8(seasons%4)), dayInSeason, year)
}
