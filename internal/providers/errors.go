package providers

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for a missing or malformed listing URL.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMetadataNotFound means the listing page has no author or title marker.
	ErrMetadataNotFound = errors.New("metadata not found")

	// ErrNoChaptersFound means the listing page has no chapter markers.
	ErrNoChaptersFound = errors.New("no chapters found")

	// ErrChapterBodyNotFound means a chapter page has no body container.
	ErrChapterBodyNotFound = errors.New("chapter body not found")
)

// TransportError is a network, timeout or non-2xx failure while fetching URL.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
