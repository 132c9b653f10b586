package cloth

import "errors"

// Domain errors for cloth setup.
var (
	// ErrSelfLoop indicates a constraint whose two ends are the same particle.
	ErrSelfLoop = errors.New("cloth: constraint endpoints must be distinct particles")

	// ErrIndexOutOfRange indicates a particle index outside the store.
	ErrIndexOutOfRange = errors.New("cloth: particle index out of range")

	// ErrInvalidConfig indicates a simulation parameter outside its valid range.
	ErrInvalidConfig = errors.New("cloth: invalid configuration")

	// ErrEmpty indicates a world with no particles.
	ErrEmpty = errors.New("cloth: no particles")
)
