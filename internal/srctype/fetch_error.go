package srctype

import "fmt"

// FetchError describes a failed payload retrieval.
//
// It matches ErrFetch with errors.Is. When the transport failed before a
// response arrived, StatusCode is zero and Err holds the cause.
type FetchError struct {
	// URL is the requested location.
	URL string

	// StatusCode is the HTTP status code, or zero if no response was received.
	StatusCode int

	// Status is the human-readable status line (e.g., "404 Not Found").
	Status string

	// Err is the underlying transport or read error, if any.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	switch {
	case e.Status != "" && e.Err != nil:
		return fmt.Sprintf("texsrc: fetch %s: %s: %v", e.URL, e.Status, e.Err)
	case e.Status != "":
		return fmt.Sprintf("texsrc: fetch %s: %s", e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("texsrc: fetch %s: %v", e.URL, e.Err)
	default:
		return "texsrc: fetch " + e.URL + ": failed"
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
