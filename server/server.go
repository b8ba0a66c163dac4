// Package server implements the HTTP resource handlers of the social graph.
// Each handler validates its payload, issues one or more Cypher statements
// through the store runner, converts the resulting nodes via the model codecs
// and responds with a status code plus JSON body. Handlers never call each
// other; cross-entity existence is always re-checked by id.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Luismorlan/sociograph/store"
	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Node labels of the data model. Only these constants are ever interpolated
// into query text; all values travel as parameters.
const (
	labelUser    = "User"
	labelPost    = "Post"
	labelComment = "Comment"
)

// Server holds the dependencies shared by all handlers. The store runner is
// injected explicitly so tests can swap in a fake.
type Server struct {
	graph store.Runner
}

// New creates a Server backed by the given store runner.
func New(graph store.Runner) *Server {
	return &Server{graph: graph}
}

// Register attaches all resource routes to the router.
func (s *Server) Register(router *gin.Engine) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.POST("/users", s.createUser)
	router.GET("/users", s.listUsers)
	router.GET("/users/:id", s.getUser)
	router.PUT("/users/:id", s.updateUser)
	router.DELETE("/users/:id", s.deleteUser)
	router.GET("/users/:id/friends", s.listFriends)
	router.POST("/users/:id/friends", s.addFriend)
	router.GET("/users/:id/friends/:fid", s.checkFriendship)
	router.DELETE("/users/:id/friends/:fid", s.removeFriend)
	router.GET("/users/:id/mutual_friends/:oid", s.getMutualFriends)
	router.GET("/users/:id/posts", s.listUserPosts)
	router.POST("/users/:id/posts", s.createPost)

	router.GET("/posts", s.listPosts)
	router.GET("/posts/:id", s.getPost)
	router.PUT("/posts/:id", s.updatePost)
	router.DELETE("/posts/:id", s.deletePost)
	router.POST("/posts/:id/like", s.likePost)
	router.DELETE("/posts/:id/like", s.unlikePost)
	router.GET("/posts/:id/comments", s.listPostComments)
	router.POST("/posts/:id/comments", s.addComment)
	router.DELETE("/posts/:id/comments/:cid", s.deletePostComment)

	router.GET("/comments", s.listAllComments)
	router.GET("/comments/:id", s.getComment)
	router.PUT("/comments/:id", s.updateComment)
	router.DELETE("/comments/:id", s.deleteComment)
	router.POST("/comments/:id/like", s.likeComment)
	router.DELETE("/comments/:id/like", s.unlikeComment)
}

// nodeExists re-queries the store for a node of the given label and id.
func (s *Server) nodeExists(ctx context.Context, label, id string) (bool, error) {
	query := fmt.Sprintf("MATCH (n:%s {id: $id}) RETURN count(n) > 0 AS found", label)
	rows, err := s.graph.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return false, err
	}
	return len(rows) > 0 && rowBool(rows[0], "found"), nil
}

func rowNode(row store.Row, alias string) (dbtype.Node, bool) {
	node, ok := row[alias].(dbtype.Node)
	return node, ok
}

func rowString(row store.Row, alias string) string {
	s, _ := row[alias].(string)
	return s
}

func rowBool(row store.Row, alias string) bool {
	b, _ := row[alias].(bool)
	return b
}

func rowInt(row store.Row, alias string) int64 {
	n, _ := row[alias].(int64)
	return n
}
