package model

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

/*

Comment is a user's reply attached to a post

Id: opaque UUID assigned at creation
Content: comment body in plain text
CreatedAt: creation time persisted on the node

A comment has exactly one CREATED edge from its author and one HAS_COMMENT
edge from its post, both set at creation and never re-parented.

*/

type Comment struct {
	Id        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentFromNode decodes a stored Comment node into the struct.
func CommentFromNode(node dbtype.Node) Comment {
	return Comment{
		Id:        stringProp(node, "id"),
		Content:   stringProp(node, "content"),
		CreatedAt: timeProp(node, "created_at"),
	}
}

// CommentRecord converts a stored Comment node into a JSON-safe record.
func CommentRecord(node dbtype.Node) Record {
	c := CommentFromNode(node)
	return Record{
		"id":         c.Id,
		"content":    c.Content,
		"created_at": formatTime(c.CreatedAt),
	}
}
