package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Navigation Errors.

	// ErrInvalidPackageOrVersion indicates the package/version pair is known
	// neither to the database nor to any area of the mirror.
	ErrInvalidPackageOrVersion = errors.New("invalid package or version")

	// ErrFileOrFolderNotFound indicates the version exists but the requested
	// path inside it does not.
	ErrFileOrFolderNotFound = errors.New("file or folder not found")

	// ErrInsecureSymlink indicates a symlink whose target escapes the
	// version directory.
	ErrInsecureSymlink = errors.New("insecure symlink")
)

// IsNotFound reports whether err is any of the "nothing there" errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidPackageOrVersion) ||
		errors.Is(err, ErrFileOrFolderNotFound)
}
