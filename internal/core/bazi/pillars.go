package bazi

import "github.com/custodia-labs/sizhu-cli/internal/core/domain"

// yearOffset aligns the Gregorian year with the cycle: 4 CE is 甲子.
const yearOffset = 4

// dayAnchor is a date whose day pillar is known: 1985-05-14 is 癸丑.
var (
	dayAnchor       = domain.CivilDate{Year: 1985, Month: 5, Day: 14}
	dayAnchorPillar = domain.NewPillar(domain.StemGui, domain.BranchChou)
)

// fiveTigers maps the year stem to the stem of its 寅 month (五虎遁).
var fiveTigers = map[domain.Stem]domain.Stem{
	domain.StemJia:  domain.StemBing,
	domain.StemJi:   domain.StemBing,
	domain.StemYi:   domain.StemWu,
	domain.StemGeng: domain.StemWu,
	domain.StemBing: domain.StemGeng,
	domain.StemXin:  domain.StemGeng,
	domain.StemDing: domain.StemRen,
	domain.StemRen:  domain.StemRen,
	domain.StemWu:   domain.StemJia,
	domain.StemGui:  domain.StemJia,
}

// fiveRats maps the day stem to the stem of its 子 hour (五鼠遁).
var fiveRats = map[domain.Stem]domain.Stem{
	domain.StemJia:  domain.StemJia,
	domain.StemJi:   domain.StemJia,
	domain.StemYi:   domain.StemBing,
	domain.StemGeng: domain.StemBing,
	domain.StemBing: domain.StemWu,
	domain.StemXin:  domain.StemWu,
	domain.StemDing: domain.StemGeng,
	domain.StemRen:  domain.StemGeng,
	domain.StemWu:   domain.StemRen,
	domain.StemGui:  domain.StemRen,
}

// YearStem returns the stem of the given Gregorian year.
func YearStem(year int) domain.Stem {
	return domain.StemAt(year - yearOffset)
}

// YearPillar returns the year pillar. The year boundary is January 1;
// the Li-Chun correction applies to month stems only.
func YearPillar(year int) domain.Pillar {
	return domain.NewPillar(YearStem(year), domain.BranchAt(year-yearOffset))
}

// MonthPillar returns the month pillar of a date.
func MonthPillar(year, month, day int) domain.Pillar {
	branch := JieQiBranch(month, day)

	effectiveYear := year
	if month == 1 || (month == 2 && day < jieDay(2)) {
		effectiveYear = year - 1
	}

	base := fiveTigers[YearStem(effectiveYear)]
	stem := domain.StemAt(base.Index() + branch.Index() - domain.BranchYin.Index())
	return domain.NewPillar(stem, branch)
}

// DayPillar returns the day pillar of a date by counting days from the anchor.
func DayPillar(date domain.CivilDate) domain.Pillar {
	delta := date.DaysSince(dayAnchor)
	return domain.NewPillar(
		domain.StemAt(dayAnchorPillar.Stem.Index()+delta),
		domain.BranchAt(dayAnchorPillar.Branch.Index()+delta),
	)
}

// HourBranch returns the branch of the two-hour slot containing hour.
// 子 spans 23:00 to 00:59, so both hour 23 and hour 0 map to it.
func HourBranch(hour int) domain.Branch {
	if hour == 23 || hour == 0 {
		return domain.BranchZi
	}
	return domain.BranchAt((hour + 1) / 2)
}

// HourPillar returns the hour pillar given the day pillar it belongs to.
func HourPillar(day domain.Pillar, hour int) domain.Pillar {
	branch := HourBranch(hour)
	base := fiveRats[day.Stem]
	return domain.NewPillar(domain.StemAt(base.Index()+branch.Index()), branch)
}
