package model

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

/*

Post is a piece of content published by a user

Id: opaque UUID assigned at creation
Title: post's title in plain text
Content: post's content in plain text
CreatedAt: creation time persisted on the node, listing order key

A post has exactly one CREATED edge from its author for its whole lifetime.
Deleting a post cascades to its comments and their LIKES edges.

*/

type Post struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostPatch enumerates the optional fields of a partial post update.
type PostPatch struct {
	Title   *string
	Content *string
}

// SetClause compiles the patch into a parameterized Cypher SET fragment for
// the given node alias. ok is false when no field is present.
func (p PostPatch) SetClause(alias string) (clause string, params map[string]any, ok bool) {
	b := newSetBuilder(alias)
	if p.Title != nil {
		b.set("title", *p.Title)
	}
	if p.Content != nil {
		b.set("content", *p.Content)
	}
	return b.build()
}

// PostFromNode decodes a stored Post node into the struct.
func PostFromNode(node dbtype.Node) Post {
	return Post{
		Id:        stringProp(node, "id"),
		Title:     stringProp(node, "title"),
		Content:   stringProp(node, "content"),
		CreatedAt: timeProp(node, "created_at"),
	}
}

// PostRecord converts a stored Post node into a JSON-safe record.
func PostRecord(node dbtype.Node) Record {
	p := PostFromNode(node)
	return Record{
		"id":         p.Id,
		"title":      p.Title,
		"content":    p.Content,
		"created_at": formatTime(p.CreatedAt),
	}
}
