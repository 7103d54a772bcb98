//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are run with `go run` or installed via `go install` and are not
// tracked in go.mod since they are development tools, not runtime dependencies.
package tools

// Development tools:
//
// mockgen - regenerates the gomock doubles in internal/mocks
//   Run:     go generate ./internal/mocks
//   Version: go.uber.org/mock v0.6.0 (matches go.mod)
//   Docs:    https://github.com/uber-go/mock
//
// golangci-lint - linting, honours the nolint directives in the tree
//   Install: go install github.com/golangci/golangci-lint/v2/cmd/golangci-lint@v2.4.0
//   Docs:    https://golangci-lint.run
//
// Integration tests for the job history repository and Redis cache need
// PostgreSQL and Redis. They skip unless reachable; set TEST_REQUIRE_INFRA=true
// to make a missing dependency fail instead.
