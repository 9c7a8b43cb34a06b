package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Gender is the declared gender of a chart subject.
type Gender string

// Supported genders.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var genderTokens = map[string]Gender{
	"male":   GenderMale,
	"m":      GenderMale,
	"man":    GenderMale,
	"boy":    GenderMale,
	"男":      GenderMale,
	"乾":      GenderMale,
	"female": GenderFemale,
	"f":      GenderFemale,
	"woman":  GenderFemale,
	"girl":   GenderFemale,
	"女":      GenderFemale,
	"坤":      GenderFemale,
}

// ParseGender parses a male or female designator, including the Chinese forms.
func ParseGender(token string) (Gender, error) {
	g, ok := genderTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, token)
	}
	return g, nil
}

// IsValid returns true if the gender is recognised.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// String returns the string representation.
func (g Gender) String() string {
	return string(g)
}

// Chinese returns 男 or 女.
func (g Gender) Chinese() string {
	switch g {
	case GenderMale:
		return "男"
	case GenderFemale:
		return "女"
	default:
		return unknownDescription
	}
}

// CivilDate is a proleptic Gregorian calendar date with no time or zone.
type CivilDate struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// NewCivilDate validates and returns the given date.
func NewCivilDate(year, month, day int) (CivilDate, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return CivilDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (Feb 30 -> Mar 2); a round trip exposes it.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return CivilDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return CivilDate{Year: year, Month: month, Day: day}, nil
}

// civilDateLayout is the only accepted text form of a date.
const civilDateLayout = "2006-01-02"

// ParseCivilDate parses a YYYY-MM-DD string. Surrounding whitespace is
// ignored; any other extra or missing character is an error.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse(civilDateLayout, strings.TrimSpace(s))
	if err != nil {
		return CivilDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewCivilDate(t.Year(), int(t.Month()), t.Day())
}

// CivilDateOf returns the calendar date of t in t's own location.
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: int(m), Day: d}
}

func (d CivilDate) toTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d CivilDate) AddDays(n int) CivilDate {
	return CivilDateOf(d.toTime().AddDate(0, 0, n))
}

// DaysSince returns the signed number of days from other to d.
// Unix seconds are used rather than time.Duration, which overflows past ~292 years.
func (d CivilDate) DaysSince(other CivilDate) int {
	const secondsPerDay = 24 * 60 * 60
	return int((d.toTime().Unix() - other.toTime().Unix()) / secondsPerDay)
}

// Before reports whether d is earlier than other.
func (d CivilDate) Before(other CivilDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String returns the date as YYYY-MM-DD.
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// BirthInput is a validated birth instant plus gender.
type BirthInput struct {
	Gender Gender    `json:"gender" yaml:"gender"`
	Date   CivilDate `json:"date" yaml:"date"`
	Hour   int       `json:"hour" yaml:"hour"`
}

// NewBirthInput validates gender, then date, then hour.
func NewBirthInput(gender string, year, month, day, hour int) (BirthInput, error) {
	g, err := ParseGender(gender)
	if err != nil {
		return BirthInput{}, err
	}
	date, err := NewCivilDate(year, month, day)
	if err != nil {
		return BirthInput{}, err
	}
	if err := ValidateHour(hour); err != nil {
		return BirthInput{}, err
	}
	return BirthInput{Gender: g, Date: date, Hour: hour}, nil
}

// ValidateHour checks hour is within 0..23.
func ValidateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	return nil
}

// Key returns a stable cache key for the input.
func (in BirthInput) Key() string {
	return fmt.Sprintf("%s|%s|%02d", in.Gender, in.Date, in.Hour)
}

// BirthMetadata describes how the chart was derived from the input.
type BirthMetadata struct {
	// Input echoes the raw input.
	Input BirthInput `json:"input" yaml:"input"`

	// ShiChen is the two-hour period name, e.g. "子时".
	ShiChen string `json:"shi_chen" yaml:"shi_chen"`

	// DayRolledOver is true when the day pillar was taken from the next day.
	DayRolledOver bool `json:"day_rolled_over" yaml:"day_rolled_over"`

	// DayPillarDate is the date the day pillar was computed on.
	DayPillarDate CivilDate `json:"day_pillar_date" yaml:"day_pillar_date"`
}

// FourPillars is the complete eight-character chart (八字).
type FourPillars struct {
	Gender Gender        `json:"gender" yaml:"gender"`
	Year   Pillar        `json:"year_pillar" yaml:"year_pillar"`
	Month  Pillar        `json:"month_pillar" yaml:"month_pillar"`
	Day    Pillar        `json:"day_pillar" yaml:"day_pillar"`
	Hour   Pillar        `json:"hour_pillar" yaml:"hour_pillar"`
	Birth  BirthMetadata `json:"birth_info" yaml:"birth_info"`
}

// MarshalJSON adds the derived full_bazi string to the wire form.
func (f FourPillars) MarshalJSON() ([]byte, error) {
	type plain FourPillars
	return json.Marshal(struct {
		plain
		FullBaZi string `json:"full_bazi"`
	}{plain: plain(f), FullBaZi: f.FullBaZi()})
}

// MarshalYAML adds the derived full_bazi string to the YAML form.
// The embedded type is exported so the encoder can read its fields.
func (f FourPillars) MarshalYAML() (any, error) {
	type Fields FourPillars
	return struct {
		Fields   `yaml:",inline"`
		FullBaZi string `yaml:"full_bazi"`
	}{Fields: Fields(f), FullBaZi: f.FullBaZi()}, nil
}

// FullBaZi returns the four pillars space-separated in year, month, day, hour order.
func (f FourPillars) FullBaZi() string {
	return strings.Join([]string{
		f.Year.String(), f.Month.String(), f.Day.String(), f.Hour.String(),
	}, " ")
}

// Pillars returns the pillars in year, month, day, hour order.
func (f FourPillars) Pillars() [4]Pillar {
	return [4]Pillar{f.Year, f.Month, f.Day, f.Hour}
}

// ChartRecord is a saved chart.
type ChartRecord struct {
	// ID is the unique identifier for the record.
	ID string `json:"id" yaml:"id"`

	// Subject identifies who requested the chart.
	Subject string `json:"subject" yaml:"subject"`

	// Label is an optional human-readable name for the chart.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Chart is the computed result.
	Chart FourPillars `json:"chart" yaml:"chart"`

	// CreatedAt is when the record was saved.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
