package page

import "errors"

var (
	// ErrLoad wraps any backend failure while loading the viewed profile.
	ErrLoad = errors.New("failed to load profile")
	// ErrStale is returned for a load overtaken by a newer one.
	ErrStale = errors.New("superseded by a newer load")
	// ErrNoProfile means the session has not loaded a profile yet.
	ErrNoProfile = errors.New("no profile loaded")
	// ErrWrongProfile means a request named a different profile than the
	// one its page session shows.
	ErrWrongProfile = errors.New("page shows a different profile")
)

func IsErrLoad(err error) bool      { return errors.Is(err, ErrLoad) }
func IsErrStale(err error) bool     { return errors.Is(err, ErrStale) }
func IsErrNoProfile(err error) bool { return errors.Is(err, ErrNoProfile) }
func IsErrWrongProfile(err error) bool {
	return errors.Is(err, ErrWrongProfile)
}
