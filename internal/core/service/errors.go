package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrFetch             = errors.New("fetch latest version failed")
	ErrStoreWrite        = errors.New("store write failed")
	ErrConcurrentRefresh = errors.New("latest pointer changed during refresh")
	ErrMalformedEvent    = errors.New("malformed mutation event")
	ErrPublish           = errors.New("publish notification failed")
)

func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
