package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
)

// Validate checks the structural rules every Config must satisfy and returns
// all violations at once.
//
// Rules: sidebar names are non-empty and unique, sidebars and categories are
// non-empty, categories carry a label, doc ids are well-formed and appear at
// most once per sidebar. Document existence is not checked here (see
// VerifyReferences).
func Validate(sidebars []Sidebar) error {
	var errs error
	seen := make(map[string]bool, len(sidebars))

	for i, sb := range sidebars {
		if strings.TrimSpace(sb.Name) == "" {
			errs = multierr.Append(errs, &EntryError{
				Sidebar: fmt.Sprintf("sidebars[%d]", i),
				Err:     ErrEmptySidebarName,
			})
			continue
		}
		if !utf8.ValidString(sb.Name) {
			errs = multierr.Append(errs, &EntryError{
				Sidebar: fmt.Sprintf("sidebars[%d]", i),
				Err:     fmt.Errorf("%w: name %q", ErrInvalidUTF8, sb.Name),
			})
			continue
		}
		if seen[sb.Name] {
			errs = multierr.Append(errs, fmt.Errorf("%q: %w", sb.Name, ErrDuplicateSidebar))
			continue
		}
		seen[sb.Name] = true

		if len(sb.Items) == 0 {
			errs = multierr.Append(errs, &EntryError{Sidebar: sb.Name, Err: ErrEmptySidebar})
			continue
		}

		v := &validator{sidebar: sb.Name, docs: make(map[DocRef]string)}
		v.entries(sb.Items, "")
		errs = multierr.Append(errs, v.errs)
	}

	return errs
}

type validator struct {
	sidebar string
	docs    map[DocRef]string // id -> first path
	errs    error
}

func (v *validator) fail(path string, err error) {
	v.errs = multierr.Append(v.errs, &EntryError{Sidebar: v.sidebar, Path: path, Err: err})
}

func (v *validator) entries(items []Entry, prefix string) {
	for i, e := range items {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		switch x := e.(type) {
		case DocRef:
			if err := CheckDocID(string(x)); err != nil {
				v.fail(path, err)
				continue
			}
			if first, dup := v.docs[x]; dup {
				v.fail(path, fmt.Errorf("%w: %q (first at %s)", ErrDuplicateDocument, x, first))
				continue
			}
			v.docs[x] = path
		case *Category:
			if x == nil {
				v.fail(path, ErrEmptyCategory)
				continue
			}
			if strings.TrimSpace(x.Label) == "" {
				v.fail(path, ErrMissingLabel)
			} else if !utf8.ValidString(x.Label) {
				v.fail(path, fmt.Errorf("%w: label %q", ErrInvalidUTF8, x.Label))
			}
			if len(x.Items) == 0 {
				v.fail(path, fmt.Errorf("%w: %q", ErrEmptyCategory, x.Label))
				continue
			}
			v.entries(x.Items, path+".items")
		default:
			v.fail(path, fmt.Errorf("unsupported entry %T", e))
		}
	}
}

// CheckDocID validates the shape of a document id: valid UTF-8,
// slash-delimited, no empty, "." or ".." segments, no surrounding or embedded
// whitespace.
func CheckDocID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDocID)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidDocID, id)
	}
	if strings.ContainsAny(id, " \t\r\n\\") {
		return fmt.Errorf("%w: %q contains whitespace or backslash", ErrInvalidDocID, id)
	}
	for _, seg := range strings.Split(id, "/") {
		switch seg {
		case "", ".", "..":
			return fmt.Errorf("%w: %q has an empty or relative segment", ErrInvalidDocID, id)
		}
	}
	return nil
}

// VerifyReferences reports every DocRef in cfg that is absent from known.
// This is the generator's check, kept apart from loading.
func VerifyReferences(cfg *Config, known map[string]bool) error {
	var errs error
	for _, sb := range cfg.Sidebars() {
		v := &validator{sidebar: sb.Name}
		v.unknown(sb.Items, "", known)
		errs = multierr.Append(errs, v.errs)
	}
	return errs
}

func (v *validator) unknown(items []Entry, prefix string, known map[string]bool) {
	for i, e := range items {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		switch x := e.(type) {
		case DocRef:
			if !known[string(x)] {
				v.fail(path, fmt.Errorf("%w: %q", ErrUnknownDocument, x))
			}
		case *Category:
			v.unknown(x.Items, path+".items", known)
		}
	}
}
