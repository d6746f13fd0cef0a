//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed via `go install` (or run with `go run`) and are
// not tracked in go.mod since they are development tools, not runtime dependencies.
package tools

// Development tools:
//
// mockgen - regenerates internal/mocks from the port interfaces
//   Run:     go generate ./internal/mocks
//   Version: go.uber.org/mock/mockgen@v0.6.0
//   Docs:    https://github.com/uber-go/mock
//
// Air - live reload while editing templates with DEV=true
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs:    https://github.com/air-verse/air
