package cache

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidObjectID is returned by Put and PutPath for an empty object id.
	ErrInvalidObjectID = constError("object id must not be empty")

	// ErrInvalidPath is returned by PutPath for an empty path.
	ErrInvalidPath = constError("path must not be empty")

	// ErrNilObject is returned when the value to cache is nil.
	ErrNilObject = constError("object must not be nil")
)
