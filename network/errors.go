package network

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed covers transport errors, timeouts and non-2xx statuses
	ErrFetchFailed = errors.New("fetch failed")
	// ErrParseFailed covers empty bodies, malformed JSON and missing fields
	ErrParseFailed = errors.New("parse failed")
)

// RequestError describes a failed call after all attempts
type RequestError struct {
	Op       string
	Method   string
	URL      string
	Status   int // 0 when no response arrived
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s %s | %d | attempts %d: %v", e.Op, e.Method, e.URL, e.Status, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%s: %s %s | attempts %d: %v", e.Op, e.Method, e.URL, e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
