package domain

import (
	"fmt"
	"time"
)

// Moment is the set of pillars of a wall-clock instant.
type Moment struct {
	Time  time.Time `json:"time" yaml:"time"`
	Year  Pillar    `json:"year_pillar" yaml:"year_pillar"`
	Month Pillar    `json:"month_pillar" yaml:"month_pillar"`
	Day   Pillar    `json:"day_pillar" yaml:"day_pillar"`
	Hour  Pillar    `json:"hour_pillar" yaml:"hour_pillar"`
}

// String formats the moment as e.g. "2025年 乙巳年 丁亥月 辛卯日 丁酉时".
func (m Moment) String() string {
	return fmt.Sprintf("%d年 %s年 %s月 %s日 %s时",
		m.Time.Year(), m.Year, m.Month, m.Day, m.Hour)
}
