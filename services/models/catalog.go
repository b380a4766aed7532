package models

// Catalog maps query names to SQL text. It is read-only once built and safe
// for concurrent readers.
type Catalog struct {
	queries map[string]string
	names   []string
}

// NewCatalog builds a Catalog from bodies, listing names in the given order.
// Names missing from bodies or with an empty body are left out.
func NewCatalog(names []string, bodies map[string]string) *Catalog {
	c := &Catalog{queries: make(map[string]string, len(names))}
	for _, name := range names {
		body, ok := bodies[name]
		if !ok || body == "" {
			continue
		}
		if _, dup := c.queries[name]; dup {
			continue
		}
		c.queries[name] = body
		c.names = append(c.names, name)
	}
	return c
}

// Get returns the SQL text of a named query.
func (c *Catalog) Get(name string) (string, error) {
	q, ok := c.queries[name]
	if !ok {
		return "", NewQueryError(ErrQueryNotFound, name, nil)
	}
	return q, nil
}

// Names lists the query names in the order they were first defined.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of queries.
func (c *Catalog) Len() int { return len(c.queries) }
