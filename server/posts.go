package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Luismorlan/sociograph/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The author leg is optional on every read path: deleting a user detaches
// its CREATED edges but leaves the posts in place, and those posts must stay
// readable.
const listPostsQuery = `
MATCH (p:Post)
OPTIONAL MATCH (p)<-[:CREATED]-(u:User)
RETURN p, u.id AS author_id, u.name AS author_name
ORDER BY p.created_at DESC`

const getPostQuery = `
MATCH (p:Post {id: $id})
OPTIONAL MATCH (p)<-[:CREATED]-(u:User)
RETURN p, u.id AS author_id, u.name AS author_name`

const listUserPostsQuery = `
MATCH (u:User {id: $user_id})-[:CREATED]->(p:Post)
RETURN p
ORDER BY p.created_at DESC`

const createPostQuery = `
MATCH (u:User {id: $user_id})
CREATE (p:Post {
	id: $id,
	title: $title,
	content: $content,
	created_at: $created_at
})
CREATE (u)-[:CREATED]->(p)
RETURN p`

// deletePostQuery cascades in one statement: detach-deleting the comments
// removes their CREATED, HAS_COMMENT and LIKES edges, then the post goes with
// its own edges. One statement means one transaction.
const deletePostQuery = `
MATCH (p:Post {id: $id})
OPTIONAL MATCH (p)-[:HAS_COMMENT]->(c:Comment)
DETACH DELETE c, p`

func (s *Server) listPosts(c *gin.Context) {
	rows, err := s.graph.Run(c.Request.Context(), listPostsQuery, nil)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	posts := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		node, ok := rowNode(row, "p")
		if !ok {
			continue
		}
		posts = append(posts, model.PostRecord(node).WithAuthor(rowString(row, "author_id"), rowString(row, "author_name")))
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) getPost(c *gin.Context) {
	rows, err := s.graph.Run(c.Request.Context(), getPostQuery, map[string]any{"id": c.Param("id")})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 {
		abortWith(c, errNotFound("post not found"))
		return
	}
	node, ok := rowNode(rows[0], "p")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	c.JSON(http.StatusOK, model.PostRecord(node).WithAuthor(rowString(rows[0], "author_id"), rowString(rows[0], "author_name")))
}

func (s *Server) listUserPosts(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.Param("id")

	found, err := s.nodeExists(ctx, labelUser, userId)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if !found {
		abortWith(c, errNotFound("user not found"))
		return
	}

	rows, err := s.graph.Run(ctx, listUserPostsQuery, map[string]any{"user_id": userId})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	posts := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		if node, ok := rowNode(row, "p"); ok {
			posts = append(posts, model.PostRecord(node))
		}
	}
	c.JSON(http.StatusOK, posts)
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Content == "" {
		abortWith(c, errValidation("missing title or content in request body"))
		return
	}
	ctx := c.Request.Context()
	userId := c.Param("id")

	found, err := s.nodeExists(ctx, labelUser, userId)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if !found {
		abortWith(c, errNotFound("user not found"))
		return
	}

	rows, err := s.graph.Run(ctx, createPostQuery, map[string]any{
		"user_id":    userId,
		"id":         uuid.New().String(),
		"title":      req.Title,
		"content":    req.Content,
		"created_at": time.Now().UTC(),
	})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 {
		abortWith(c, errUnexpected)
		return
	}
	node, ok := rowNode(rows[0], "p")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	c.JSON(http.StatusCreated, model.PostRecord(node))
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *Server) updatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, errValidation("missing title or content in request body"))
		return
	}
	patch := model.PostPatch{Title: req.Title, Content: req.Content}
	clause, params, ok := patch.SetClause("p")
	if !ok {
		abortWith(c, errValidation("missing title or content in request body"))
		return
	}

	params["id"] = c.Param("id")
	query := fmt.Sprintf("MATCH (p:Post {id: $id}) SET %s RETURN p", clause)
	rows, err := s.graph.Run(c.Request.Context(), query, params)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 {
		abortWith(c, errNotFound("post not found"))
		return
	}
	node, ok := rowNode(rows[0], "p")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	c.JSON(http.StatusOK, model.PostRecord(node))
}

func (s *Server) deletePost(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	found, err := s.nodeExists(ctx, labelPost, id)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if !found {
		abortWith(c, errNotFound("post not found"))
		return
	}

	if _, err := s.graph.Run(ctx, deletePostQuery, map[string]any{"id": id}); err != nil {
		abortWith(c, storeError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post and associated comments deleted successfully"})
}
