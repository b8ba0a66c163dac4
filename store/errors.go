package store

import (
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

// Kind classifies a store-layer failure so handlers can translate it into an
// HTTP status without inspecting driver internals.
type Kind int

const (
	// KindUnexpected covers any store or runtime failure without a more
	// specific classification.
	KindUnexpected Kind = iota
	// KindConflict means a uniqueness constraint was violated.
	KindConflict
	// KindConnection means the store is unreachable.
	KindConnection
)

const constraintViolationCode = "Neo.ClientError.Schema.ConstraintValidationFailed"

// Classify maps a driver error to its Kind. Constraint violations are
// detected primarily by the server error code, with a message-text fallback
// for stores that do not report the standardized code.
func Classify(err error) Kind {
	if err == nil {
		return KindUnexpected
	}
	if neo4j.IsConnectivityError(err) {
		return KindConnection
	}

	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) {
		if neoErr.Code == constraintViolationCode {
			return KindConflict
		}
		msg := strings.ToLower(neoErr.Msg)
		if strings.Contains(msg, "constraint") && (strings.Contains(msg, "unique") || strings.Contains(msg, "violation")) {
			return KindConflict
		}
	}
	return KindUnexpected
}

// MentionsProperty reports whether the store's error message names the given
// node property. Used to tell the client which field collided on a
// constraint violation.
func MentionsProperty(err error, property string) bool {
	var neoErr *db.Neo4jError
	if !errors.As(err, &neoErr) {
		return false
	}
	return strings.Contains(strings.ToLower(neoErr.Msg), strings.ToLower(property))
}
