// codec holds the shared helpers for converting graph nodes to JSON-safe
// records. Conversion is deterministic and pure: values come from the stored
// node properties only.
package model

import (
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Record is a JSON-safe rendering of a graph node or composite result.
type Record map[string]any

// Author is the summary of a record's creator embedded in read responses.
func Author(id, name string) Record {
	return Record{"id": id, "name": name}
}

// WithAuthor returns a copy of the record decorated with an author summary.
// An empty id means the CREATED edge is gone (the author was deleted); the
// author is rendered as null rather than a hollow summary.
func (r Record) WithAuthor(id, name string) Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	if id == "" {
		out["author"] = nil
	} else {
		out["author"] = Author(id, name)
	}
	return out
}

func stringProp(node dbtype.Node, key string) string {
	s, _ := node.Props[key].(string)
	return s
}

// timeProp reads a temporal property from the stored value. Nodes written
// before datetime storage was introduced may carry the value as an ISO-8601
// string instead.
func timeProp(node dbtype.Node, key string) time.Time {
	switch v := node.Props[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// formatTime renders a stored timestamp as an ISO-8601 string, empty when
// the property was absent.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// setBuilder assembles a parameterized SET clause from a fixed whitelist of
// fields. Property names are compile-time constants; only values travel as
// parameters.
type setBuilder struct {
	alias   string
	clauses []string
	params  map[string]any
}

func newSetBuilder(alias string) *setBuilder {
	return &setBuilder{alias: alias, params: map[string]any{}}
}

func (b *setBuilder) set(prop string, value any) {
	b.clauses = append(b.clauses, b.alias+"."+prop+" = $"+prop)
	b.params[prop] = value
}

func (b *setBuilder) build() (string, map[string]any, bool) {
	if len(b.clauses) == 0 {
		return "", nil, false
	}
	return strings.Join(b.clauses, ", "), b.params, true
}
