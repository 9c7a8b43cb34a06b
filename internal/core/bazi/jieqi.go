package bazi

import "github.com/custodia-labs/sizhu-cli/internal/core/domain"

// jieThreshold holds, per Gregorian month, the first day of the solar-term
// month that begins inside it and the branch of the month that ends there.
// Days before the threshold belong to before; from the threshold on, to the next branch.
type jieThreshold struct {
	day    int
	before domain.Branch
}

var jieThresholds = [12]jieThreshold{
	{day: 6, before: domain.BranchZi},   // Jan: 小寒
	{day: 4, before: domain.BranchChou}, // Feb: 立春
	{day: 6, before: domain.BranchYin},  // Mar: 惊蛰
	{day: 5, before: domain.BranchMao},  // Apr: 清明
	{day: 6, before: domain.BranchChen}, // May: 立夏
	{day: 6, before: domain.BranchSi},   // Jun: 芒种
	{day: 7, before: domain.BranchWu},   // Jul: 小暑
	{day: 8, before: domain.BranchWei},  // Aug: 立秋
	{day: 8, before: domain.BranchShen}, // Sep: 白露
	{day: 8, before: domain.BranchYou},  // Oct: 寒露
	{day: 7, before: domain.BranchXu},   // Nov: 立冬
	{day: 7, before: domain.BranchHai},  // Dec: 大雪
}

// JieQiBranch returns the branch of the solar-term month containing (month, day).
// month must be 1..12 and day 1..31; callers validate dates beforehand.
func JieQiBranch(month, day int) domain.Branch {
	t := jieThresholds[month-1]
	if day < t.day {
		return t.before
	}
	return domain.BranchAt(t.before.Index() + 1)
}

// jieDay returns the approximate first day of the solar-term month that starts in month.
func jieDay(month int) int {
	return jieThresholds[month-1].day
}
