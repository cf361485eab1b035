// Package client talks to the taskkeeper HTTP API.
//
// HTTP statuses are mapped onto the sentinel errors in errors.go so callers
// can branch with errors.Is. A transport failure (connection refused,
// timeout) is reported as ErrUnavailable.
package client
