package bazi

import (
	"time"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

// MomentAt returns the pillars of t in t's own location.
func MomentAt(t time.Time) domain.Moment {
	date := domain.CivilDateOf(t)
	dayDate, _ := DayPillarDate(date, t.Hour())
	day := DayPillar(dayDate)

	return domain.Moment{
		Time:  t,
		Year:  YearPillar(date.Year),
		Month: MonthPillar(date.Year, date.Month, date.Day),
		Day:   day,
		Hour:  HourPillar(day, t.Hour()),
	}
}
