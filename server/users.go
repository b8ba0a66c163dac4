package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Luismorlan/sociograph/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const createUserQuery = `
CREATE (u:User {
	id: $id,
	name: $name,
	email: $email,
	created_at: $created_at
})
RETURN u`

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" {
		abortWith(c, errValidation("missing name or email in request body"))
		return
	}

	rows, err := s.graph.Run(c.Request.Context(), createUserQuery, map[string]any{
		"id":         uuid.New().String(),
		"name":       req.Name,
		"email":      req.Email,
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
	node, ok := rowNode(rows[0], "u")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	c.JSON(http.StatusCreated, model.UserRecord(node))
}

func (s *Server) listUsers(c *gin.Context) {
	rows, err := s.graph.Run(c.Request.Context(), "MATCH (u:User) RETURN u ORDER BY u.name", nil)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	users := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		if node, ok := rowNode(row, "u"); ok {
			users = append(users, model.UserRecord(node))
		}
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) getUser(c *gin.Context) {
	rows, err := s.graph.Run(c.Request.Context(), "MATCH (u:User {id: $id}) RETURN u", map[string]any{"id": c.Param("id")})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 {
		abortWith(c, errNotFound("user not found"))
		return
	}
	node, ok := rowNode(rows[0], "u")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	c.JSON(http.StatusOK, model.UserRecord(node))
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *Server) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, errValidation("missing name or email in request body to update"))
		return
	}
	patch := model.UserPatch{Name: req.Name, Email: req.Email}
	clause, params, ok := patch.SetClause("u")
	if !ok {
		abortWith(c, errValidation("missing name or email in request body to update"))
		return
	}

	params["id"] = c.Param("id")
	query := fmt.Sprintf("MATCH (u:User {id: $id}) SET %s RETURN u", clause)
	rows, err := s.graph.Run(c.Request.Context(), query, params)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 {
		abortWith(c, errNotFound("user not found"))
		return
	}
	node, ok := rowNode(rows[0], "u")
	if !ok {
		abortWith(c, errUnexpected)
		return
	}
	c.JSON(http.StatusOK, model.UserRecord(node))
}

func (s *Server) deleteUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	found, err := s.nodeExists(ctx, labelUser, id)
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if !found {
		abortWith(c, errNotFound("user not found"))
		return
	}

	// Detach-delete removes every edge touching the user. Authored posts and
	// comments survive, orphaned of their author link.
	if _, err := s.graph.Run(ctx, "MATCH (u:User {id: $id}) DETACH DELETE u", map[string]any{"id": id}); err != nil {
		abortWith(c, storeError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}
