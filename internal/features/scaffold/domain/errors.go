package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a ScaffoldError for the transport layer.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindExternalTool   Kind = "external_tool"
	KindStructureBuild Kind = "structure_build"
	KindArchive        Kind = "archive"
	KindTransmission   Kind = "transmission"
	KindListing        Kind = "listing"
	KindInternal       Kind = "internal"
)

// User-facing messages shared by the service and the HTTP layer.
const (
	MsgProjectNameRequired = "Project name is required"
	MsgInvalidArchitecture = "Invalid architecture specified"
	MsgProjectExists       = "Project with this name already exists"
	MsgInvalidFolders      = "customFolders must be an array of strings"
	MsgArchiveFailed       = "Failed to create project archive"
	MsgListFailed          = "Failed to list projects"
)

// ScaffoldError is the error type returned by the project pipeline.
type ScaffoldError struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *ScaffoldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ScaffoldError) Unwrap() error {
	return e.Cause
}

// NewError creates a ScaffoldError without a cause.
func NewError(kind Kind, msg string) error {
	return &ScaffoldError{Kind: kind, Msg: msg}
}

// WrapError creates a ScaffoldError around cause.
func WrapError(kind Kind, msg string, cause error) error {
	return &ScaffoldError{Kind: kind, Msg: msg, Cause: cause}
}

// KindOf returns the Kind of the first ScaffoldError in err's chain, or
// KindInternal.
func KindOf(err error) Kind {
	var se *ScaffoldError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of the first ScaffoldError in
// err's chain, or err.Error().
func MessageOf(err error) string {
	var se *ScaffoldError
	if errors.As(err, &se) {
		return se.Msg
	}
	return err.Error()
}
