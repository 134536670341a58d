package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface lets handlers translate domain failures
// without switching on concrete types.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}

	// NotInTrashError indicates a permanent delete was attempted on an
	// item that has not been trashed first
	NotInTrashError struct {
		Message string
	}

	// CorruptTreeError indicates a cycle in a folder parent chain
	CorruptTreeError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }
func (e *NotInTrashError) Error() string   { return e.Message }
func (e *CorruptTreeError) Error() string  { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }
func (e *NotInTrashError) StatusCode() int   { return http.StatusConflict }
func (e *CorruptTreeError) StatusCode() int  { return http.StatusInternalServerError }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateName    = errors.New("name already exists")
	ErrInvalidParent    = errors.New("invalid parent folder")
	ErrNotInTrash       = errors.New("not in trash")
	ErrCorruptTree      = errors.New("corrupt folder tree")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// Is allows errors.Is() to match sentinels through the typed errors.
func (e *NotFoundError) Is(target error) bool    { return target == ErrNotFound }
func (e *NotInTrashError) Is(target error) bool  { return target == ErrNotInTrash }
func (e *CorruptTreeError) Is(target error) bool { return target == ErrCorruptTree }

// DuplicateNameError represents a sibling name conflict with details about
// the existing item
type DuplicateNameError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (file, folder)
	ResourceID   string // ID of the existing/conflicting item
}

// Error implements the error interface
func (e *DuplicateNameError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *DuplicateNameError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrDuplicateName
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// InvalidParentError indicates the requested parent folder does not exist
// for the owner, or is in the trash
type InvalidParentError struct {
	Message  string
	ParentID string
}

func (e *InvalidParentError) Error() string { return e.Message }

func (e *InvalidParentError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrInvalidParent
func (e *InvalidParentError) Is(target error) bool {
	return target == ErrInvalidParent
}
