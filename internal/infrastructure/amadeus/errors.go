package amadeus

import (
	"fmt"
)

// AuthError means the token exchange failed, or the provider kept rejecting
// authentication after one retry with a fresh token. It is fatal for the
// current query only.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("amadeus auth: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// SearchError is a non-auth HTTP failure from the flight-offer endpoint.
// It carries the upstream status and body and is fatal for the current
// query only.
type SearchError struct {
	Status int
	Body   string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("amadeus search: status %d: %s", e.Status, e.Body)
}
