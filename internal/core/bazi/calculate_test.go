package bazi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

// chartSummary is the comparable part of a chart used by the golden table.
type chartSummary struct {
	Year, Month, Day, Hour string
	RolledOver             bool
}

func summarise(fp domain.FourPillars) chartSummary {
	return chartSummary{
		Year:       fp.Year.String(),
		Month:      fp.Month.String(),
		Day:        fp.Day.String(),
		Hour:       fp.Hour.String(),
		RolledOver: fp.Birth.DayRolledOver,
	}
}

func TestCalculate_GoldenVectors(t *testing.T) {
	tests := []struct {
		name                   string
		gender                 string
		year, month, day, hour int
		want                   chartSummary
	}{
		{
			name: "late zi hour rolls the day", gender: "male",
			year: 1984, month: 11, day: 23, hour: 23,
			want: chartSummary{"甲子", "乙亥", "壬戌", "庚子", true},
		},
		{
			name: "evening female", gender: "female",
			year: 1989, month: 11, day: 23, hour: 20,
			want: chartSummary{"己巳", "乙亥", "丁亥", "庚戌", false},
		},
		{
			name: "recent afternoon", gender: "male",
			year: 2025, month: 11, day: 24, hour: 16,
			want: chartSummary{"乙巳", "丁亥", "丁酉", "戊申", false},
		},
		{
			name: "summer afternoon", gender: "female",
			year: 1981, month: 6, day: 17, hour: 14,
			want: chartSummary{"辛酉", "甲午", "丙寅", "乙未", false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, err := CalculateRaw(tt.gender, tt.year, tt.month, tt.day, tt.hour)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, summarise(fp)); diff != "" {
				t.Errorf("chart mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculate_AnchorDate(t *testing.T) {
	fp, err := CalculateRaw("male", 1985, 5, 14, 10)
	require.NoError(t, err)
	assert.Equal(t, "癸丑", fp.Day.String())
}

func TestCalculate_FullBaZiAndMetadata(t *testing.T) {
	fp, err := CalculateRaw("男", 1984, 11, 23, 23)
	require.NoError(t, err)

	assert.Equal(t, "甲子 乙亥 壬戌 庚子", fp.FullBaZi())
	assert.Equal(t, domain.GenderMale, fp.Gender)
	assert.Equal(t, "子时", fp.Birth.ShiChen)
	assert.True(t, fp.Birth.DayRolledOver)
	assert.Equal(t, domain.CivilDate{Year: 1984, Month: 11, Day: 24}, fp.Birth.DayPillarDate)
	assert.Equal(t, domain.CivilDate{Year: 1984, Month: 11, Day: 23}, fp.Birth.Input.Date)
	assert.Equal(t, 23, fp.Birth.Input.Hour)
}

func TestCalculate_Deterministic(t *testing.T) {
	in, err := domain.NewBirthInput("female", 2000, 2, 29, 7)
	require.NoError(t, err)

	first := Calculate(in)
	second := Calculate(in)
	assert.Equal(t, first, second)
}

func TestCalculate_RolloverInvariant(t *testing.T) {
	dates := []domain.CivilDate{
		{Year: 1984, Month: 11, Day: 23},
		{Year: 1999, Month: 12, Day: 31},
		{Year: 2024, Month: 2, Day: 28},
		{Year: 2024, Month: 2, Day: 3},
		{Year: 2023, Month: 1, Day: 5},
		{Year: 1900, Month: 6, Day: 30},
	}

	for _, d := range dates {
		t.Run(d.String(), func(t *testing.T) {
			at23 := Calculate(domain.BirthInput{Gender: domain.GenderMale, Date: d, Hour: 23})
			at22 := Calculate(domain.BirthInput{Gender: domain.GenderMale, Date: d, Hour: 22})

			assert.Equal(t, at22.Year, at23.Year)
			assert.Equal(t, at22.Month, at23.Month)
			assert.Equal(t, DayPillar(d.AddDays(1)), at23.Day)
			assert.True(t, at23.Birth.DayRolledOver)
			assert.Equal(t, d.AddDays(1), at23.Birth.DayPillarDate)
			assert.Equal(t, domain.BranchZi, at23.Hour.Branch)
		})
	}
}

func TestCalculate_NoRolloverAtMidnight(t *testing.T) {
	d := domain.CivilDate{Year: 1984, Month: 11, Day: 23}
	fp := Calculate(domain.BirthInput{Gender: domain.GenderFemale, Date: d, Hour: 0})

	assert.False(t, fp.Birth.DayRolledOver)
	assert.Equal(t, d, fp.Birth.DayPillarDate)
	assert.Equal(t, DayPillar(d), fp.Day)
	assert.Equal(t, domain.BranchZi, fp.Hour.Branch)
}

func TestCalculateRaw_Errors(t *testing.T) {
	_, err := CalculateRaw("unknown", 2023, 4, 31, 25)
	assert.ErrorIs(t, err, domain.ErrInvalidGender)

	_, err = CalculateRaw("male", 2023, 4, 31, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = CalculateRaw("male", 2023, 2, 30, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = CalculateRaw("male", 2023, 4, 30, 24)
	assert.ErrorIs(t, err, domain.ErrInvalidHour)
}
