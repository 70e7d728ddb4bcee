package proc

import (
	stderrors "errors"
)

// Classification indicates whether a failure should trigger a retry.
// Callers running commands in supervision or build loops use this to
// decide if an operation is worth attempting again.
type Classification string

const (
	// ClassificationRetryable indicates temporary failures that may
	// succeed on retry. Example: a process killed by a timeout.
	ClassificationRetryable Classification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed
	// on retry. Examples: missing commands, permission denials.
	ClassificationPermanent Classification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should
// be attempted.
func (c Classification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps failure kinds to their classification.
// Only time-limit failures are considered transient; every other kind
// reflects a condition that re-running the same command will not fix.
var defaultClassifications = map[Kind]Classification{
	KindTimeout: ClassificationRetryable,

	KindNotFound:          ClassificationPermanent,
	KindPermissionDenied:  ClassificationPermanent,
	KindKilled:            ClassificationPermanent,
	KindNonZeroExit:       ClassificationPermanent,
	KindInvalidArgument:   ClassificationPermanent,
	KindSpawn:             ClassificationPermanent,
	KindMaxBufferExceeded: ClassificationPermanent,
	KindUnknown:           ClassificationPermanent,
}

// classificationFor returns the classification for a kind.
// Returns ClassificationPermanent if the kind is not in the map (safe default).
func classificationFor(kind Kind) Classification {
	if class, ok := defaultClassifications[kind]; ok {
		return class
	}
	return ClassificationPermanent
}

// GetClassification extracts the Classification from an error.
// Returns ClassificationPermanent if the error is nil or does not carry
// one of the package's variants. This is a safe default that prevents
// inappropriate retry attempts.
func GetClassification(err error) Classification {
	if err == nil {
		return ClassificationPermanent
	}

	var procErr Error
	if stderrors.As(err, &procErr) {
		return classificationFor(procErr.Kind())
	}

	return ClassificationPermanent
}

// IsRetryable returns true if the error's kind is classified as retryable.
// Returns false if the error is nil or unclassified (safe default).
//
// Example:
//
//	if proc.IsRetryable(err) {
//	    time.Sleep(backoff)
//	    return retry(operation)
//	}
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
