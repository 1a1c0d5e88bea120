package hxtable

import "errors"

// Sentinel errors for table operations.
var (
	ErrTableNotFound    = errors.New("hxtable: table not found")
	ErrInvalidFormat    = errors.New("hxtable: invalid state token format")
	ErrSignatureInvalid = errors.New("hxtable: state token signature verification failed")
	ErrDecryptFailed    = errors.New("hxtable: state token decryption failed")
)

// IsTableNotFound checks if err is a table-not-found error.
func IsTableNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}

// IsTokenError checks if err is a state token decode failure (malformed,
// tampered, or undecryptable). Callers recover from these by falling back
// to default state rather than surfacing them.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrDecryptFailed)
}
