package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax marks a configuration that could not be parsed at all.
	ErrSyntax = errors.New("malformed sidebar configuration")

	// ErrDuplicateSidebar is returned when two sidebars share a name.
	ErrDuplicateSidebar = errors.New("duplicate sidebar name")

	// ErrUnknownDocument is returned by VerifyReferences for a DocRef that
	// does not match any known document.
	ErrUnknownDocument = errors.New("unknown document reference")

	ErrEmptySidebarName  = errors.New("sidebar name is empty")
	ErrEmptySidebar      = errors.New("sidebar has no entries")
	ErrEmptyCategory     = errors.New("category has no items")
	ErrMissingLabel      = errors.New("category label is empty")
	ErrInvalidDocID      = errors.New("invalid document id")
	ErrDuplicateDocument = errors.New("document listed more than once in sidebar")

	// ErrInvalidUTF8 rejects sidebar names and labels that cannot be
	// rendered losslessly.
	ErrInvalidUTF8 = errors.New("text is not valid UTF-8")
)

// SyntaxError reports a source that cannot be turned into a Config.
// Line and Column are 1-based and zero when unknown.
type SyntaxError struct {
	Source string
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	loc := e.Source
	if loc == "" {
		loc = "sidebars"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", loc, e.Line, e.Column)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

func (e *SyntaxError) Unwrap() error { return e.Err }

// EntryError locates a validation failure inside a sidebar.
// Path looks like "[4].items[1]" relative to the sidebar.
type EntryError struct {
	Sidebar string
	Path    string
	Err     error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s%s: %v", e.Sidebar, e.Path, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }
