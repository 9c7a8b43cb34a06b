// Package bazi computes the four Gan-Zhi pillars (四柱八字) of a birth instant.
//
// Every function here is pure: no I/O, no shared state, no caching. Results
// may be computed concurrently from any number of goroutines.
//
// Solar-term month boundaries are a fixed calendar-day approximation of the
// twelve Jie (节) terms, not an ephemeris. Dates within a day of a real
// boundary may therefore land in the neighbouring month.
package bazi
