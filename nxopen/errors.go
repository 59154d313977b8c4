package nxopen

import (
	"errors"
	"fmt"

	maplegw "github.com/maplegw/go-maplegw"
)

var (
	ErrUpstreamRejected    = errors.New("upstream rejected request")
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	ErrMalformedPayload    = errors.New("malformed upstream payload")
	ErrUnknownCategory     = errors.New("unknown category")
)

// StatusError is returned when the upstream answers with a non-2xx status.
// The response body is intentionally not retained.
type StatusError struct {
	Category   maplegw.Category
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code from %s: %d", e.Category, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamRejected
}
