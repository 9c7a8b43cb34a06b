package bazi

import "github.com/custodia-labs/sizhu-cli/internal/core/domain"

// rolloverHour is the hour at which the day pillar moves to the next date.
// Hour 0 is also 子 but stays on its own date.
const rolloverHour = 23

// DayPillarDate returns the date the day pillar is computed on, and whether
// it was moved forward from the birth date.
func DayPillarDate(date domain.CivilDate, hour int) (domain.CivilDate, bool) {
	if hour == rolloverHour {
		return date.AddDays(1), true
	}
	return date, false
}

// Calculate computes the four pillars of a validated birth input.
// Year and month always use the original date; only the day pillar
// follows the 23:00 rollover, and the hour stem follows the day pillar.
func Calculate(in domain.BirthInput) domain.FourPillars {
	dayDate, rolled := DayPillarDate(in.Date, in.Hour)

	year := YearPillar(in.Date.Year)
	month := MonthPillar(in.Date.Year, in.Date.Month, in.Date.Day)
	day := DayPillar(dayDate)
	hour := HourPillar(day, in.Hour)

	return domain.FourPillars{
		Gender: in.Gender,
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Birth: domain.BirthMetadata{
			Input:         in,
			ShiChen:       hour.Branch.ShiChen(),
			DayRolledOver: rolled,
			DayPillarDate: dayDate,
		},
	}
}

// CalculateRaw validates scalar inputs and computes the chart.
// Validation fails before any pillar arithmetic runs.
func CalculateRaw(gender string, year, month, day, hour int) (domain.FourPillars, error) {
	in, err := domain.NewBirthInput(gender, year, month, day, hour)
	if err != nil {
		return domain.FourPillars{}, err
	}
	return Calculate(in), nil
}
