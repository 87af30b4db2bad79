package api

import (
	"fmt"

	"github.com/XXS1337/rentease/internal/common"
)

// Sentinels re-exported from common so callers of this package can match
// transport outcomes without importing both.
var (
	ErrUnavailable    = common.ErrUnavailable
	ErrUnauthorized   = common.ErrUnauthorized
	ErrSessionExpired = common.ErrSessionExpired
	ErrNotFound       = common.ErrNotFound
	ErrEmailTaken     = common.ErrEmailTaken
)

// Error carries a server-reported failure that is not one of the sentinel
// conditions. Message is the backend's human-readable explanation, possibly
// empty.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}
