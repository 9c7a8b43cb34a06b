// Package domain defines the core entities of the Four-Pillars calendar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Stem, Branch: the 10- and 12-element cyclic symbol sets
//   - Pillar: an immutable stem-branch pair
//   - BirthInput: a validated gender, date and hour
//   - FourPillars: the eight-character chart
//   - ChartRecord: a saved chart
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
