package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrOutOfBounds       = errors.New("cell out of bounds")
)

func invalidDimensions(width, height int) error {
	return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
}

func outOfBounds(x, y, width, height int) error {
	return fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, x, y, width, height)
}
