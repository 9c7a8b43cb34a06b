// Package memory provides in-memory implementations of driven ports.
// The stores back tests and ephemeral runs; ChartCache is used in production
// to memoise computed charts.
package memory
