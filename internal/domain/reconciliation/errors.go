package reconciliation

import "errors"

// Error taxonomy of the reconciliation workflow. Operations wrap these with
// fmt.Errorf("%w: ...") so errors.Is keeps working on the detailed error.
var (
	ErrValidation             = errors.New("validation error")
	ErrInvalidState           = errors.New("invalid state")
	ErrMissingFacts           = errors.New("missing facts")
	ErrInvalidSnapshot        = errors.New("invalid calculation snapshot")
	ErrConcurrentModification = errors.New("concurrent modification")
)
