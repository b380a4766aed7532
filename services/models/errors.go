package models

import (
	"errors"
	"fmt"
)

// Failures of a catalog lookup or query run. Match them with errors.Is.
var (
	ErrMissingCatalogFile   = errors.New("catalog file not found")
	ErrQueryNotFound        = errors.New("query not found in catalog")
	ErrConnectionFailed     = errors.New("database connection failed")
	ErrQueryExecutionFailed = errors.New("query execution failed")
)

// QueryError attaches the query name and the underlying diagnostic to one of
// the sentinel errors above.
type QueryError struct {
	Kind  error
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s [%s]", e.Kind, e.Query)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Kind, e.Query, e.Err)
}

// Unwrap exposes both the sentinel and the original error to errors.Is / errors.As.
func (e *QueryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewQueryError builds a QueryError of the given kind.
func NewQueryError(kind error, query string, err error) error {
	return &QueryError{Kind: kind, Query: query, Err: err}
}
