package friends

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	// ErrBusy means a toggle for the same pair is still being written.
	ErrBusy = errors.New("friend update in progress")
)

func IsErrUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsErrBadRequest(err error) bool   { return errors.Is(err, ErrBadRequest) }
func IsErrBusy(err error) bool         { return errors.Is(err, ErrBusy) }
