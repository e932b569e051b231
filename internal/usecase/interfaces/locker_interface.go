package interfaces

import "context"

// ILocker serializes work on one key. Lock blocks until the key is free or
// the wait budget runs out; the returned func releases the key.
type ILocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
