package errs

// Failure categories. Every specific error in the domain and usecase layers is
// marked with exactly one of these, so callers can match either.
var (
	ErrNotFound           = New("not found")
	ErrValidation         = New("validation failed")
	ErrConflict           = New("conflict")
	ErrPermission         = New("permission denied")
	ErrInvariantViolation = New("invariant violation")
)

// Define creates a sentinel error that also matches the given category.
func Define(msg string, category error) error {
	return Mark(New(msg), category)
}

// Category returns the category sentinel err belongs to, or nil.
func Category(err error) error {
	for _, c := range []error{ErrInvariantViolation, ErrNotFound, ErrPermission, ErrConflict, ErrValidation} {
		if Is(err, c) {
			return c
		}
	}
	return nil
}
