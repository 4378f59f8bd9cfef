package vault

import "errors"

// Error kinds reported back through the tool dispatcher. Handlers match
// these with errors.Is; anything else is a generic I/O failure.
var (
	// ErrOutOfVault means a path escaped the vault sandbox.
	ErrOutOfVault = errors.New("path outside vault")

	// ErrNotFound means the requested note or folder does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExists means create_note hit an occupied path.
	ErrExists = errors.New("already exists")

	// ErrInvalidInput means a malformed parameter (empty query, bad limit).
	ErrInvalidInput = errors.New("invalid input")
)
