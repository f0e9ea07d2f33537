// Package logging wires log/slog with the handlers and attribute conventions
// used across ratebridge. Console output is a compact key=value format with a
// leading component label; JSON output is for machine consumption. Components
// attach themselves with NewComponentLogger and use the typed attr helpers.
package logging
