package models

import (
	"errors"
	"testing"
)

func TestNewCatalogDropsEmptyBodies(t *testing.T) {
	c := NewCatalog([]string{"a", "b", "c"}, map[string]string{"a": "SELECT 1", "b": ""})

	if c.Len() != 1 {
		t.Fatalf("expected 1 query, got %d", c.Len())
	}
	if names := c.Names(); len(names) != 1 || names[0] != "a" {
		t.Errorf("Names() = %v", names)
	}
	for _, name := range []string{"b", "c"} {
		if _, err := c.Get(name); !errors.Is(err, ErrQueryNotFound) {
			t.Errorf("Get(%q) = %v, want ErrQueryNotFound", name, err)
		}
	}
}

func TestQueryErrorUnwrapsBoth(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewQueryError(ErrConnectionFailed, "users", cause)

	if !errors.Is(err, ErrConnectionFailed) || !errors.Is(err, cause) {
		t.Fatalf("QueryError should match both the kind and the cause: %v", err)
	}
	var qe *QueryError
	if !errors.As(err, &qe) || qe.Query != "users" {
		t.Fatalf("errors.As failed: %v", err)
	}
	want := "database connection failed [users]: dial tcp: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
