package model

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

/*

User is a member of the social graph

Id: opaque UUID assigned at creation, immutable afterwards
Name: display name, listing order key
Email: unique across all users, enforced by a store-side constraint
CreatedAt: creation time persisted on the node, never resampled on read

*/

type User struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPatch enumerates the optional fields of a partial user update. A nil
// field is left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

// SetClause compiles the patch into a parameterized Cypher SET fragment for
// the given node alias. ok is false when no field is present.
func (p UserPatch) SetClause(alias string) (clause string, params map[string]any, ok bool) {
	b := newSetBuilder(alias)
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Email != nil {
		b.set("email", *p.Email)
	}
	return b.build()
}

// UserFromNode decodes a stored User node into the struct.
func UserFromNode(node dbtype.Node) User {
	return User{
		Id:        stringProp(node, "id"),
		Name:      stringProp(node, "name"),
		Email:     stringProp(node, "email"),
		CreatedAt: timeProp(node, "created_at"),
	}
}

// UserRecord converts a stored User node into a JSON-safe record.
func UserRecord(node dbtype.Node) Record {
	u := UserFromNode(node)
	return Record{
		"id":         u.Id,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": formatTime(u.CreatedAt),
	}
}
