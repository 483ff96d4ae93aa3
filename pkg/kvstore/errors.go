package kvstore

import "errors"

var (
	ErrEmptyKey    = errors.New("kvstore: empty key")
	ErrNegativeTTL = errors.New("kvstore: negative ttl")
	ErrClosed      = errors.New("kvstore: store is closed")
)
