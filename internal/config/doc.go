// Package config loads, validates, and normalizes the ratebridge TOML
// configuration. All tunables flow through the Config struct handed to the
// planner and replayer at construction; nothing reads ambient global state.
package config
