// Package services implements the driving port interfaces.
// Services validate input, call the pure bazi engine and orchestrate
// calls to driven ports (adapters) for history, caching and LLM readings.
package services
