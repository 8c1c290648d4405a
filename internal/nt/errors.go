package nt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure surfaced by the nt package.
type ErrorKind int

const (
	// KindUnknown is reported by KindOf for errors that did not come from nt.
	KindUnknown ErrorKind = iota
	// KindNotFound means a referenced node, parent, note or snippet is absent.
	KindNotFound
	// KindInvalidReference means a node was pointed at itself or at one of its descendants.
	KindInvalidReference
	// KindNonEmptyNode means a delete was blocked by children or bound resources.
	KindNonEmptyNode
	// KindStorageFailure is a relational engine error.
	KindStorageFailure
	// KindFilesystemFailure is a note body read/write error.
	KindFilesystemFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidReference:
		return "InvalidReference"
	case KindNonEmptyNode:
		return "NonEmptyNode"
	case KindStorageFailure:
		return "StorageFailure"
	case KindFilesystemFailure:
		return "FilesystemFailure"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its kind.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidReference  = &Error{Kind: KindInvalidReference}
	ErrNonEmptyNode      = &Error{Kind: KindNonEmptyNode}
	ErrStorageFailure    = &Error{Kind: KindStorageFailure}
	ErrFilesystemFailure = &Error{Kind: KindFilesystemFailure}
)

// Reasons attached to KindNonEmptyNode errors.
const (
	ReasonHasChildren       = "children"
	ReasonHasBoundResources = "bindings"
)

// Error carries the kind of a failure plus the ids involved.
type Error struct {
	Kind   ErrorKind
	Op     string // operation, e.g. "delete_tree_node"
	Entity string // "node", "parent", "note", "snippet"
	ID     string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.message())
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) message() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s not found: %s", e.entity(), e.ID)
	case KindInvalidReference:
		msg := "invalid reference"
		if e.ID != "" {
			msg = fmt.Sprintf("invalid reference for %s %s", e.entity(), e.ID)
		}
		if e.Reason != "" {
			msg += ": " + e.Reason
		}
		return msg
	case KindNonEmptyNode:
		switch e.Reason {
		case ReasonHasChildren:
			return fmt.Sprintf("node %s has child nodes, delete them first", e.ID)
		case ReasonHasBoundResources:
			return fmt.Sprintf("node %s has resources mounted, remove them first", e.ID)
		}
		return fmt.Sprintf("node %s is not empty", e.ID)
	case KindStorageFailure:
		return "storage failure"
	case KindFilesystemFailure:
		return "filesystem failure"
	}
	return "error"
}

func (e *Error) entity() string {
	if e.Entity == "" {
		return "node"
	}
	return e.Entity
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. Sentinels carry only
// a kind, so errors.Is(err, ErrNotFound) matches any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.ID == "" || t.ID == e.ID)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func notFound(op, entity, id string) error {
	return &Error{Kind: KindNotFound, Op: op, Entity: entity, ID: id}
}

func storageFailure(op string, err error) error {
	// Keep the kind of errors that were already classified below us.
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStorageFailure, Op: op, Err: err}
}

func filesystemFailure(op, id string, err error) error {
	return &Error{Kind: KindFilesystemFailure, Op: op, Entity: "note", ID: id, Err: err}
}
