package proc

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
//
// Example:
//
//	var exitErr *proc.ExitError
//	if proc.As(err, &exitErr) {
//	    fmt.Println(exitErr.ExitCode)
//	}
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetKind extracts the Kind from an error.
// Returns KindUnknown if the error is nil or does not carry one of the
// package's variants anywhere in its chain.
//
// Example:
//
//	if proc.GetKind(err) == proc.KindNotFound {
//	    // Handle missing command
//	}
func GetKind(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var procErr Error
	if stderrors.As(err, &procErr) {
		return procErr.Kind()
	}

	return KindUnknown
}

// IsKind reports whether err carries the given kind.
// Returns false if err is nil.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return GetKind(err) == kind
}
