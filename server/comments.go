package server

import (
	"net/http"
	"time"

	"github.com/Luismorlan/sociograph/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// As on the post read paths, the author leg is optional: a comment survives
// its author's deletion and must stay readable.
const listPostCommentsQuery = `
MATCH (p:Post {id: $post_id})-[:HAS_COMMENT]->(c:Comment)
OPTIONAL MATCH (c)<-[:CREATED]-(u:User)
RETURN c, u.id AS author_id, u.name AS author_name
ORDER BY c.created_at ASC`

const addCommentQuery = `
MATCH (u:User {id: $user_id})
MATCH (p:Post {id: $post_id})
CREATE (c:Comment {
	id: $id,
	content: $content,
	created_at: $created_at
})
CREATE (u)-[:CREATED]->(c)
CREATE (p)-[:HAS_COMMENT]->(c)
RETURN c, u.id AS author_id, u.name AS author_name`

const listAllCommentsQuery = `
MATCH (p:Post)-[:HAS_COMMENT]->(c:Comment)
OPTIONAL MATCH (c)<-[:CREATED]-(u:User)
RETURN c, u.id AS author_id, u.name AS author_name, p.id AS post_id
ORDER BY c.created_at DESC`

const getCommentQuery = `
MATCH (p:Post)-[:HAS_COMMENT]->(c:Comment {id: $id})
OPTIONAL MATCH (c)<-[:CREATED]-(u:User)
RETURN c, u.id AS author_id, u.name AS author_name, p.id AS post_id`

const postCommentLinkedQuery = `
MATCH (p:Post {id: $post_id})-[:HAS_COMMENT]->(c:Comment {id: $comment_id})
RETURN count(c) > 0 AS found`

func (s *Server) listPostComments(c *gin.Context) {
	ctx := c.Request.Context()
	postId := c.Param("id")

	found, err := s.nodeExists(ctx, labelPost, postId)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if !found {
		abortWith(c, errNotFound("post not found"))
		return
	}

	rows, err := s.graph.Run(ctx, listPostCommentsQuery, map[string]any{"post_id": postId})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	comments := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		node, ok := rowNode(row, "c")
		if !ok {
			continue
		}
		comments = append(comments, model.CommentRecord(node).WithAuthor(rowString(row, "author_id"), rowString(row, "author_name")))
	}
	c.JSON(http.StatusOK, comments)
}

type addCommentRequest struct {
	UserId  string `json:"user_id"`
	Content string `json:"content"`
}

func (s *Server) addComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserId == "" || req.Content == "" {
		abortWith(c, errValidation("missing user_id or content in request body"))
		return
	}
	ctx := c.Request.Context()
	postId := c.Param("id")

	found, err := s.nodeExists(ctx, labelUser, req.UserId)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if !found {
		abortWith(c, errNotFound("user not found"))
		return
	}
	found, err = s.nodeExists(ctx, labelPost, postId)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if !found {
		abortWith(c, errNotFound("post not found"))
		return
	}

	rows, err := s.graph.Run(ctx, addCommentQuery, map[string]any{
		"user_id":    req.UserId,
		"post_id":    postId,
		"id":         uuid.New().String(),
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
	node, ok := rowNode(rows[0], "c")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	c.JSON(http.StatusCreated, model.CommentRecord(node).WithAuthor(rowString(rows[0], "author_id"), rowString(rows[0], "author_name")))
}

func (s *Server) listAllComments(c *gin.Context) {
	rows, err := s.graph.Run(c.Request.Context(), listAllCommentsQuery, nil)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	comments := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		node, ok := rowNode(row, "c")
		if !ok {
			continue
		}
		rec := model.CommentRecord(node).WithAuthor(rowString(row, "author_id"), rowString(row, "author_name"))
		rec["post_id"] = rowString(row, "post_id")
		comments = append(comments, rec)
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) getComment(c *gin.Context) {
	rows, err := s.graph.Run(c.Request.Context(), getCommentQuery, map[string]any{"id": c.Param("id")})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 {
		abortWith(c, errNotFound("comment not found"))
		return
	}
	node, ok := rowNode(rows[0], "c")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	rec := model.CommentRecord(node).WithAuthor(rowString(rows[0], "author_id"), rowString(rows[0], "author_name"))
	rec["post_id"] = rowString(rows[0], "post_id")
	c.JSON(http.StatusOK, rec)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) updateComment(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		abortWith(c, errValidation("missing content in request body"))
		return
	}

	rows, err := s.graph.Run(c.Request.Context(), "MATCH (c:Comment {id: $id}) SET c.content = $content RETURN c", map[string]any{
		"id":      c.Param("id"),
		"content": req.Content,
	})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 {
		abortWith(c, errNotFound("comment not found"))
		return
	}
	node, ok := rowNode(rows[0], "c")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	c.JSON(http.StatusOK, model.CommentRecord(node))
}

func (s *Server) deleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	found, err := s.nodeExists(ctx, labelComment, id)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if !found {
		abortWith(c, errNotFound("comment not found"))
		return
	}

	if _, err := s.graph.Run(ctx, "MATCH (c:Comment {id: $id}) DETACH DELETE c", map[string]any{"id": id}); err != nil {
		abortWith(c, storeError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}

// deletePostComment is the post-scoped delete: the comment must be linked to
// that post via HAS_COMMENT, otherwise 404.
func (s *Server) deletePostComment(c *gin.Context) {
	ctx := c.Request.Context()
	postId, commentId := c.Param("id"), c.Param("cid")

	rows, err := s.graph.Run(ctx, postCommentLinkedQuery, map[string]any{"post_id": postId, "comment_id": commentId})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 || !rowBool(rows[0], "found") {
		abortWith(c, errNotFound("comment not found or not associated with this post"))
		return
	}

	if _, err := s.graph.Run(ctx, "MATCH (c:Comment {id: $id}) DETACH DELETE c", map[string]any{"id": commentId}); err != nil {
		abortWith(c, storeError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}
