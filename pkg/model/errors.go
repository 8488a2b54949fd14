package model

import (
	"errors"
	"fmt"
)

// FailureKind classifies the terminal failure modes of a room build. Every
// kind aborts the entire run; nothing is retried.
type FailureKind string

const (
	// KindMissingHostEntity indicates a required wall or floor type is absent
	// from the document and cannot be created by the pipeline.
	KindMissingHostEntity FailureKind = "missing_host_entity"
	// KindGeometryDegenerate indicates a zero or negative room dimension that
	// would produce zero-length footprint edges.
	KindGeometryDegenerate FailureKind = "geometry_degenerate"
	// KindResolutionFailure indicates level lookup or creation failed.
	KindResolutionFailure FailureKind = "resolution_failure"
	// KindCreationFailure indicates wall or floor creation was rejected by the
	// document model.
	KindCreationFailure FailureKind = "creation_failure"
	// KindTransactionFailure indicates the commit was rejected after all prior
	// steps apparently succeeded.
	KindTransactionFailure FailureKind = "transaction_failure"
)

// BuildError is the single failure surface of the room pipeline. It carries
// the failure kind for callers that branch on taxonomy and wraps the
// underlying cause.
type BuildError struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *BuildError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// NewBuildError wraps err with a failure kind and the operation that failed.
func NewBuildError(kind FailureKind, op string, err error) *BuildError {
	return &BuildError{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the failure kind from err, unwrapping as needed. It returns
// an empty kind when err carries no BuildError.
func KindOf(err error) FailureKind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
