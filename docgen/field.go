/*
field.go - Document field values with provenance

PURPOSE:
  Every value placed into a generated document is tagged with where it
  came from: provided by the case record, missing and required before
  the document is usable, or defaulted by the system and needing human
  review. The renderer decides how each provenance is presented; the
  document builders only tag.

MARKERS:
  MissingRequired renders as "[REQUIRED]" (optionally with a hint, e.g.
  "[REQUIRED] Y / N") and DefaultedNeedsReview as "[REVIEW] value".
  Documents are never blank-filled and field assembly never fails on
  missing data.
*/
package docgen

import (
	"time"

	"github.com/sga/workcover-engine/claims"
)

// Markers rendered for non-provided fields.
const (
	MarkerRequired = "[REQUIRED]"
	MarkerReview   = "[REVIEW]"
)

// Provenance says where a field's value came from.
type Provenance int

const (
	// Provided: the value came from the case record or operator input.
	Provided Provenance = iota
	// MissingRequired: no value exists and one must be filled in before
	// the document is usable.
	MissingRequired
	// DefaultedNeedsReview: the system supplied a plausible default that
	// a human should verify.
	DefaultedNeedsReview
)

// Field is one tagged document value.
type Field struct {
	Value string
	Hint  string // shown after the REQUIRED marker when set
	Prov  Provenance
}

// Text tags a value as provided, or as missing-required when empty.
func Text(v string) Field {
	if v == "" {
		return Field{Prov: MissingRequired}
	}
	return Field{Value: v, Prov: Provided}
}

// TextHint is Text with a hint shown when the value is missing.
func TextHint(v, hint string) Field {
	if v == "" {
		return Field{Hint: hint, Prov: MissingRequired}
	}
	return Field{Value: v, Prov: Provided}
}

// Review tags a system default for human verification, or
// missing-required when the default itself is empty.
func Review(def string) Field {
	if def == "" {
		return Field{Prov: MissingRequired}
	}
	return Field{Value: def, Prov: DefaultedNeedsReview}
}

// TextOrReview prefers a provided value and falls back to a reviewed
// default.
func TextOrReview(v, def string) Field {
	if v != "" {
		return Field{Value: v, Prov: Provided}
	}
	return Review(def)
}

// Static tags fixed template content (employer name, today's date)
// that needs neither review nor fill-in.
func Static(v string) Field {
	return Field{Value: v, Prov: Provided}
}

// Date tags a stored date string, reformatted for display
// (dd/mm/yyyy). Empty input is missing-required; an unparseable value
// is passed through as provided so operator-entered free text is not
// destroyed.
func Date(v string) Field {
	if v == "" {
		return Field{Prov: MissingRequired}
	}
	t, err := time.Parse(claims.DateLayout, v)
	if err != nil {
		return Field{Value: v, Prov: Provided}
	}
	return Field{Value: t.Format("02/01/2006"), Prov: Provided}
}

// Render produces the display string for the field.
func (f Field) Render() string {
	switch f.Prov {
	case MissingRequired:
		if f.Hint != "" {
			return MarkerRequired + " " + f.Hint
		}
		return MarkerRequired
	case DefaultedNeedsReview:
		return MarkerReview + " " + f.Value
	default:
		return f.Value
	}
}

// NeedsAttention reports whether the field blocks or qualifies the
// document (anything not plainly provided).
func (f Field) NeedsAttention() bool {
	return f.Prov != Provided
}

// FieldMap is the flat field dictionary a document exposes to the
// renderer.
type FieldMap map[string]Field
