package bazi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMomentAt_String(t *testing.T) {
	ts := time.Date(2025, time.November, 18, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025年 乙巳年 丁亥月 辛卯日 丁酉时", MomentAt(ts).String())
}

func TestMomentAt_UsesSubCalculators(t *testing.T) {
	ts := time.Date(2025, time.November, 24, 16, 5, 0, 0, time.UTC)
	m := MomentAt(ts)

	assert.Equal(t, "乙巳", m.Year.String())
	assert.Equal(t, "丁亥", m.Month.String())
	assert.Equal(t, "丁酉", m.Day.String())
	assert.Equal(t, "戊申", m.Hour.String())
	assert.Equal(t, ts, m.Time)
}

func TestMomentAt_LateNightRollsDay(t *testing.T) {
	ts := time.Date(1984, time.November, 23, 23, 15, 0, 0, time.UTC)
	m := MomentAt(ts)
	assert.Equal(t, "壬戌", m.Day.String())
	assert.Equal(t, "庚子", m.Hour.String())
}

func TestMomentAt_UsesLocation(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*60*60)
	// 16:30 UTC is 00:30 the next day in Shanghai.
	ts := time.Date(2025, time.November, 23, 16, 30, 0, 0, time.UTC).In(shanghai)
	m := MomentAt(ts)
	assert.Equal(t, "丁酉", m.Day.String())
	assert.Equal(t, "子", m.Hour.Branch.Name())
}
