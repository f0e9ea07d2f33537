// Package services defines the error taxonomy shared across ratebridge
// components. Sentinel errors classify failures (validation, configuration,
// not found, transient, external tool) and Wrap attaches component context
// while preserving the marker for errors.Is checks.
package services
