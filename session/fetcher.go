package session

import (
	"context"

	"github.com/krisalay/object-cache/object"
)

/*
Fetcher is the contract between the session and the remote repository.

1. Session checks the cache → miss (or caching disabled for this fetch)
2. Session calls FetchObject / FetchObjectByPath
3. Fetcher performs the round trip
4. Session converts the result and stores it in the cache
5. Session returns the object

Implementations return an error wrapping ErrObjectNotFound when the
repository has no such object.
*/
type Fetcher interface {
	FetchObject(ctx context.Context, id string, oc object.OperationContext) (*object.Data, error)
	FetchObjectByPath(ctx context.Context, path string, oc object.OperationContext) (*object.Data, error)
}
