package catalog

import "strings"

// Normalize trims every field and enforces the required-field rules:
// kind must be a known kind, origin and name must be non-empty. Status
// defaults to active when unset.
func Normalize(r Record) (Record, error) {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Category = strings.TrimSpace(r.Category)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.SourcePath = strings.TrimSpace(r.SourcePath)

	if !r.Kind.Valid() {
		return r, ValidationError{Field: "kind", Reason: "unknown kind " + string(r.Kind)}
	}
	if r.Origin == "" {
		return r, ValidationError{Field: "origin", Reason: "must not be empty"}
	}
	if r.Name == "" {
		return r, ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if r.Status == "" {
		r.Status = StatusActive
	}
	if !r.Status.Valid() {
		return r, ValidationError{Field: "status", Reason: "unknown status " + string(r.Status)}
	}

	return r, nil
}
