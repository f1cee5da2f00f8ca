package table

import (
	"fmt"

	apperrors "studio-backend/pkg/errors"
)

// Reference-list maintenance. Videos carry back-references to tags and
// learning paths as string sets; the store forbids empty sets, so a
// logically empty list is stored as the single-element sentinel {""}.
// All mutation of these lists goes through AddReference/RemoveReference so
// both sides of a relationship are always updated inside one transaction.

// IsSentinel reports whether list is the sentinel empty list.
func IsSentinel(list []string) bool {
	return len(list) == 1 && list[0] == EmptyRef
}

// Refs returns the logical references in list, dropping the sentinel.
func Refs(list []string) []string {
	if IsSentinel(list) {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, ref := range list {
		if ref != EmptyRef {
			out = append(out, ref)
		}
	}
	return out
}

// Sentinel returns the stored form of an empty reference list.
func Sentinel() []string {
	return []string{EmptyRef}
}

// AddReference returns list with ref appended. A sentinel list is replaced
// rather than appended to. Adding a reference that is already present is an
// inconsistency: the caller's view of the record is stale.
func AddReference(list []string, ref string) ([]string, error) {
	if ref == EmptyRef {
		return nil, apperrors.NewValidation("reference must not be empty")
	}

	refs := Refs(list)
	for _, existing := range refs {
		if existing == ref {
			return nil, apperrors.NewInconsistentReference(
				fmt.Sprintf("reference %q already present", ref))
		}
	}

	out := make([]string, 0, len(refs)+1)
	out = append(out, refs...)
	out = append(out, ref)
	return out, nil
}

// RemoveReference returns list without ref, substituting the sentinel when
// the result would be empty. Removing an absent reference fails: it means
// the caller planned against stale state, and silently ignoring it would
// hide the drift.
func RemoveReference(list []string, ref string) ([]string, error) {
	if ref == EmptyRef {
		return nil, apperrors.NewValidation("reference must not be empty")
	}

	refs := Refs(list)
	out := make([]string, 0, len(refs))
	found := false
	for _, existing := range refs {
		if existing == ref {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		return nil, apperrors.NewInconsistentReference(
			fmt.Sprintf("reference %q not present", ref))
	}

	if len(out) == 0 {
		return Sentinel(), nil
	}
	return out, nil
}

// ContainsReference reports whether ref is logically present in list.
func ContainsReference(list []string, ref string) bool {
	for _, existing := range Refs(list) {
		if existing == ref {
			return true
		}
	}
	return false
}
