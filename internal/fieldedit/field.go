// Package fieldedit implements the double-click edit protocol for single
// form fields: a field shows its value, switches to an editable draft, and
// either commits the draft through a callback or cancels back to the
// original.
package fieldedit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/reference"
)

// Kind selects the input control and commit conversion.
type Kind string

const (
	KindText             Kind = "text"
	KindNumber           Kind = "number"
	KindDate             Kind = "date"
	KindEmail            Kind = "email"
	KindSelect           Kind = "select"
	KindSearchableSelect Kind = "searchable-select"
	KindTextarea         Kind = "textarea"
)

// State is the field's mode.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// EmptyDisplay is shown for a field without a value.
const EmptyDisplay = "-"

// ErrInvalidNumber is returned when a number field's draft does not parse.
var ErrInvalidNumber = errors.New("fieldedit: invalid number")

// CommitFunc persists a changed value. Returning an error keeps the field in
// Editing with its draft intact.
type CommitFunc func(name, value string) error

// Key is a keyboard event delivered to the field.
type Key struct {
	Name  string
	Shift bool
}

// Recognized key names.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Option is one entry of a plain select. Disabled marks the synthetic entry
// that stands in for a value missing from the option list.
type Option struct {
	Value    string
	Label    string
	Disabled bool
}

// Field is a single editable value.
type Field struct {
	name     string
	label    string
	kind     Kind
	options  []string
	groups   []reference.OptionGroup
	display  func(string) string
	onCommit CommitFunc

	state    State
	original string
	draft    string
	filter   string
	err      error
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithLabel sets the human-readable label.
func WithLabel(label string) FieldOption {
	return func(f *Field) { f.label = label }
}

// WithOptions sets the choices of a select field.
func WithOptions(options ...string) FieldOption {
	return func(f *Field) { f.options = append([]string(nil), options...) }
}

// WithGroups sets the grouped choices of a searchable-select field.
func WithGroups(groups []reference.OptionGroup) FieldOption {
	return func(f *Field) { f.groups = groups }
}

// WithDisplay replaces the default display formatting.
func WithDisplay(transform func(string) string) FieldOption {
	return func(f *Field) { f.display = transform }
}

// WithCommit sets the callback run on a changed commit.
func WithCommit(fn CommitFunc) FieldOption {
	return func(f *Field) { f.onCommit = fn }
}

// StartEditing opens the field in Editing mode.
func StartEditing() FieldOption {
	return func(f *Field) {
		f.state = Editing
	}
}

// NewField returns a field in Viewing mode showing original.
func NewField(name string, kind Kind, original string, opts ...FieldOption) *Field {
	f := &Field{name: name, label: name, kind: kind, original: original, draft: original}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the field key.
func (f *Field) Name() string { return f.name }

// Label returns the display label.
func (f *Field) Label() string { return f.label }

// Kind returns the input kind.
func (f *Field) Kind() Kind { return f.kind }

// State returns the current mode.
func (f *Field) State() State { return f.state }

// Original returns the last committed or externally supplied value.
func (f *Field) Original() string { return f.original }

// Draft returns the value being edited.
func (f *Field) Draft() string { return f.draft }

// Err returns the error of the last failed commit.
func (f *Field) Err() error { return f.err }

// Begin switches to Editing with the draft set to the original value.
func (f *Field) Begin() {
	if f.state == Editing {
		return
	}
	f.state = Editing
	f.draft = f.original
	f.filter = ""
	f.err = nil
}

// Input replaces the draft. It is ignored while Viewing.
func (f *Field) Input(value string) {
	if f.state != Editing {
		return
	}
	f.draft = value
}

// Blur commits the draft. For searchable-select fields this is the
// outside-click commit.
func (f *Field) Blur() error {
	return f.Commit()
}

// Key handles a key press. Enter on the display starts editing; while
// editing Enter commits, except Shift+Enter in a textarea which inserts a
// newline. Escape cancels.
func (f *Field) Key(k Key) error {
	if f.state == Viewing {
		if k.Name == KeyEnter {
			f.Begin()
		}
		return nil
	}

	switch k.Name {
	case KeyEnter:
		if f.kind == KindTextarea && k.Shift {
			f.draft += "\n"
			return nil
		}
		return f.Commit()
	case KeyEscape:
		f.Cancel()
	}
	return nil
}

// Choose picks an option of a searchable-select and commits it.
func (f *Field) Choose(option string) error {
	if f.state != Editing {
		return nil
	}
	f.draft = option
	f.filter = ""
	return f.Commit()
}

// Commit leaves Editing. A draft is converted for the field kind first; a
// value equal to the original is dropped silently, a changed one is handed
// to the commit callback.
func (f *Field) Commit() error {
	if f.state != Editing {
		return nil
	}
	if f.draft == f.original {
		f.leave()
		return nil
	}

	value, err := f.commitValue()
	if err == nil && f.sameAsOriginal(value) {
		f.leave()
		return nil
	}
	if err == nil && f.onCommit != nil {
		err = f.onCommit(f.name, value)
	}
	if err != nil {
		f.err = err
		return err
	}

	f.state = Viewing
	f.original = value
	f.draft = value
	f.err = nil
	return nil
}

func (f *Field) leave() {
	f.state = Viewing
	f.draft = f.original
	f.filter = ""
	f.err = nil
}

// sameAsOriginal compares numbers by value so "5.0" does not rewrite "5".
func (f *Field) sameAsOriginal(value string) bool {
	if value == f.original {
		return true
	}
	if f.kind != KindNumber {
		return false
	}
	original, err := decimal.NewFromString(strings.TrimSpace(f.original))
	if err != nil {
		return false
	}
	converted, err := decimal.NewFromString(value)
	return err == nil && converted.Equal(original)
}

func (f *Field) commitValue() (string, error) {
	if f.kind != KindNumber {
		return f.draft, nil
	}
	trimmed := strings.TrimSpace(f.draft)
	if trimmed == "" {
		return "0", nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, f.draft)
	}
	return d.String(), nil
}

// Cancel discards the draft and returns to Viewing without a callback.
func (f *Field) Cancel() {
	f.leave()
}

// Reset adopts an externally changed value. A field being edited keeps its
// draft and only picks up the new original.
func (f *Field) Reset(original string) {
	f.original = original
	if f.state == Viewing {
		f.draft = original
	}
}

// Options lists the select choices. When the current draft is not among
// them, a disabled entry holding the draft is placed first.
func (f *Field) Options() []Option {
	out := make([]Option, 0, len(f.options)+1)
	if len(f.options) > 0 && !contains(f.options, f.draft) {
		label := f.draft
		if label == "" {
			label = "Select..."
		}
		out = append(out, Option{Value: f.draft, Label: label, Disabled: true})
	}
	for _, opt := range f.options {
		out = append(out, Option{Value: opt, Label: opt})
	}
	return out
}

// Filter sets the live search term of a searchable-select.
func (f *Field) Filter(term string) {
	f.filter = term
}

// Groups returns the grouped choices matching the filter. Groups left
// without options are omitted.
func (f *Field) Groups() []reference.OptionGroup {
	folder := cases.Fold()
	term := folder.String(f.filter)
	var out []reference.OptionGroup
	for _, group := range f.groups {
		var matched []string
		for _, opt := range group.Options {
			if strings.Contains(folder.String(opt), term) {
				matched = append(matched, opt)
			}
		}
		if len(matched) > 0 {
			out = append(out, reference.OptionGroup{Label: group.Label, Options: matched})
		}
	}
	return out
}

// Display renders the original value for Viewing mode.
func (f *Field) Display() string {
	var shown string
	switch {
	case f.display != nil:
		shown = f.display(f.original)
	case f.kind == KindDate && f.original != "":
		shown = dates.FormatDDMMYYYY(f.original)
	default:
		shown = f.original
	}
	if shown == "" {
		return EmptyDisplay
	}
	return shown
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
