package auth0

import "fmt"

// UpstreamError is any non-2xx answer from the Auth0 APIs. It keeps the
// status code and raw body for diagnostics; the ledger records the message
// verbatim.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("auth0 %s HTTP %d: %s", e.Op, e.Status, e.Body)
}

// NotFoundError is a 404 from delete-by-id specifically. The caller decides
// whether pre-existing absence is acceptable; it must not be folded into a
// generic failure.
type NotFoundError struct {
	UserID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("auth0 delete HTTP 404 (user not found): %s", e.UserID)
}
