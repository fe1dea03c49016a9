// Package study defines the research study record that the search engine
// indexes, and loads study catalogs from files or PostgreSQL.
package study

import (
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/study-search/pkg/errors"
)

// Study is one searchable document. Title is both indexed and returned as
// the search result; Description is only indexed.
type Study struct {
	ID          string `json:"study_id" yaml:"study_id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Record is the wire shape of a study as it appears in catalog files and
// database rows. Pointer fields distinguish a missing field from an empty
// one. StudyID accepts integers or strings.
type Record struct {
	StudyID     any     `json:"study_id" yaml:"study_id"`
	Title       *string `json:"title" yaml:"title"`
	Description *string `json:"description" yaml:"description"`
}

// ValidationError reports the fields of one record that failed validation.
type ValidationError struct {
	Index  int
	ID     string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s:%s", field, e.Fields[field]))
	}
	id := e.ID
	if id == "" {
		id = "<none>"
	}
	return fmt.Sprintf("study #%d (id %s): %s", e.Index, id, strings.Join(parts, "; "))
}

// Unwrap lets callers match validation failures with errors.Is against
// apperrors.ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// Decode validates records and converts them to Studies, preserving order.
// It fails on the first record that lacks a study_id, title or description,
// or whose study_id repeats an earlier one. Empty strings are accepted.
func Decode(records []Record) ([]Study, error) {
	studies := make([]Study, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		errs := make(map[string]string)
		id, err := formatID(rec.StudyID)
		if err != nil {
			errs["study_id"] = err.Error()
		} else if prev, dup := seen[id]; dup {
			errs["study_id"] = fmt.Sprintf("duplicate of study #%d", prev)
		}
		if rec.Title == nil {
			errs["title"] = "title is required"
		}
		if rec.Description == nil {
			errs["description"] = "description is required"
		}
		if len(errs) > 0 {
			return nil, &ValidationError{Index: i, ID: id, Fields: errs}
		}
		seen[id] = i
		studies = append(studies, Study{
			ID:          id,
			Title:       *rec.Title,
			Description: *rec.Description,
		})
	}
	return studies, nil
}

func formatID(v any) (string, error) {
	switch id := v.(type) {
	case nil:
		return "", fmt.Errorf("study_id is required")
	case string:
		if strings.TrimSpace(id) == "" {
			return "", fmt.Errorf("study_id must not be blank")
		}
		return id, nil
	case int:
		return fmt.Sprintf("%d", id), nil
	case int64:
		return fmt.Sprintf("%d", id), nil
	case uint64:
		return fmt.Sprintf("%d", id), nil
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, so it is out of range too.
		if id >= math.MaxInt64 || id < math.MinInt64 {
			return "", fmt.Errorf("study_id %v is out of range", id)
		}
		if id != float64(int64(id)) {
			return "", fmt.Errorf("study_id %v is not an integer", id)
		}
		return fmt.Sprintf("%d", int64(id)), nil
	default:
		return "", fmt.Errorf("study_id has unsupported type %T", v)
	}
}
