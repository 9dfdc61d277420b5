package config

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidCapacity is returned for non-numeric or negative capacities.
	ErrInvalidCapacity = constError("invalid cache capacity")

	// ErrInvalidTTL is returned for unparsable or negative time-to-live values.
	ErrInvalidTTL = constError("invalid cache time-to-live")

	// ErrInvalidEviction is returned for unknown eviction policy names.
	ErrInvalidEviction = constError("invalid cache eviction policy")
)
