package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Likes on posts and comments share one contract: idempotent creation through
// MERGE, and unliking an absent like is a NotFound distinct from a missing
// user or target.

type likeRequest struct {
	UserId string `json:"user_id"`
}

func (s *Server) likePost(c *gin.Context) {
	s.like(c, labelPost)
}

func (s *Server) unlikePost(c *gin.Context) {
	s.unlike(c, labelPost)
}

func (s *Server) likeComment(c *gin.Context) {
	s.like(c, labelComment)
}

func (s *Server) unlikeComment(c *gin.Context) {
	s.unlike(c, labelComment)
}

func (s *Server) like(c *gin.Context, label string) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserId == "" {
		abortWith(c, errValidation("missing user_id in request body"))
		return
	}
	ctx := c.Request.Context()
	targetId := c.Param("id")

	if apiErr := s.requireLikeEndpoints(c, req.UserId, label, targetId); apiErr != nil {
		abortWith(c, apiErr)
		return
	}

	query := fmt.Sprintf(`
MATCH (u:User {id: $user_id})
MATCH (t:%s {id: $target_id})
MERGE (u)-[r:LIKES]->(t)
RETURN count(r) > 0 AS liked`, label)
	if _, err := s.graph.Run(ctx, query, map[string]any{"user_id": req.UserId, "target_id": targetId}); err != nil {
		abortWith(c, storeError(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": strings.ToLower(label) + " liked"})
}

func (s *Server) unlike(c *gin.Context, label string) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserId == "" {
		abortWith(c, errValidation("missing user_id in request body"))
		return
	}
	ctx := c.Request.Context()
	targetId := c.Param("id")

	query := fmt.Sprintf(`
MATCH (u:User {id: $user_id})-[r:LIKES]->(t:%s {id: $target_id})
DELETE r
RETURN count(r) AS deleted`, label)
	rows, err := s.graph.Run(ctx, query, map[string]any{"user_id": req.UserId, "target_id": targetId})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) > 0 && rowInt(rows[0], "deleted") > 0 {
		c.JSON(http.StatusOK, gin.H{"message": strings.ToLower(label) + " unliked"})
		return
	}

	// Nothing was deleted: either an endpoint is missing or the like never
	// existed. The two cases report different NotFound messages.
	if apiErr := s.requireLikeEndpoints(c, req.UserId, label, targetId); apiErr != nil {
		abortWith(c, apiErr)
		return
	}
	abortWith(c, errNotFound("like relationship does not exist"))
}

// requireLikeEndpoints checks that both the liking user and the like target
// exist, returning the NotFound error naming the missing one.
func (s *Server) requireLikeEndpoints(c *gin.Context, userId, label, targetId string) *apiError {
	ctx := c.Request.Context()

	found, err := s.nodeExists(ctx, labelUser, userId)
	if err != nil {
		return storeError(err)
	}
	if !found {
		return errNotFound("user not found")
	}

	found, err = s.nodeExists(ctx, label, targetId)
	if err != nil {
		return storeError(err)
	}
	if !found {
		return errNotFound(strings.ToLower(label) + " not found")
	}
	return nil
}
