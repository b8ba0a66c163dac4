package server

import (
	"net/http"

	"github.com/Luismorlan/sociograph/model"
	"github.com/gin-gonic/gin"
)

// A friendship is one logical relationship stored as two directed
// FRIENDS_WITH edges. Every mutation writes or deletes both directions in a
// single statement so they can never diverge.

const addFriendQuery = `
MATCH (u1:User {id: $user_id})
MATCH (u2:User {id: $friend_id})
MERGE (u1)-[r1:FRIENDS_WITH]->(u2)
MERGE (u2)-[r2:FRIENDS_WITH]->(u1)
RETURN count(r1) > 0 AS linked`

const removeFriendQuery = `
MATCH (u1:User {id: $user_id}), (u2:User {id: $friend_id})
OPTIONAL MATCH (u1)-[r1:FRIENDS_WITH]->(u2)
OPTIONAL MATCH (u2)-[r2:FRIENDS_WITH]->(u1)
DELETE r1, r2`

const mutualFriendsQuery = `
MATCH (u1:User {id: $user_id})-[:FRIENDS_WITH]->(m:User)<-[:FRIENDS_WITH]-(u2:User {id: $other_id})
WHERE m.id <> $user_id AND m.id <> $other_id
RETURN m
ORDER BY m.name`

func (s *Server) listFriends(c *gin.Context) {
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

	rows, err := s.graph.Run(ctx, "MATCH (u:User {id: $id})-[:FRIENDS_WITH]->(friend:User) RETURN friend", map[string]any{"id": id})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	friends := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		if node, ok := rowNode(row, "friend"); ok {
			friends = append(friends, model.UserRecord(node))
		}
	}
	c.JSON(http.StatusOK, friends)
}

type addFriendRequest struct {
	FriendId string `json:"friend_id"`
}

func (s *Server) addFriend(c *gin.Context) {
	var req addFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FriendId == "" {
		abortWith(c, errValidation("missing friend_id in request body"))
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	if id == req.FriendId {
		abortWith(c, errValidation("user cannot be friends with themselves"))
		return
	}

	if apiErr := s.requireUsers(c, id, req.FriendId); apiErr != nil {
		abortWith(c, apiErr)
		return
	}

	// MERGE makes re-adding an existing friendship a no-op.
	if _, err := s.graph.Run(ctx, addFriendQuery, map[string]any{"user_id": id, "friend_id": req.FriendId}); err != nil {
		abortWith(c, storeError(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "users are now friends"})
}

func (s *Server) removeFriend(c *gin.Context) {
	ctx := c.Request.Context()
	id, friendId := c.Param("id"), c.Param("fid")

	if apiErr := s.requireUsers(c, id, friendId); apiErr != nil {
		abortWith(c, apiErr)
		return
	}

	// Deleting an absent friendship is not an error: both OPTIONAL MATCHes
	// come back empty and DELETE is a no-op.
	if _, err := s.graph.Run(ctx, removeFriendQuery, map[string]any{"user_id": id, "friend_id": friendId}); err != nil {
		abortWith(c, storeError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friendship removed"})
}

func (s *Server) checkFriendship(c *gin.Context) {
	ctx := c.Request.Context()
	id, friendId := c.Param("id"), c.Param("fid")

	if apiErr := s.requireUsers(c, id, friendId); apiErr != nil {
		abortWith(c, apiErr)
		return
	}

	// COUNT subquery rather than the exists() pattern function, which Neo4j 5
	// removed.
	query := `
MATCH (u1:User {id: $user_id}), (u2:User {id: $friend_id})
RETURN COUNT { (u1)-[:FRIENDS_WITH]->(u2) } > 0 AS are_friends`
	rows, err := s.graph.Run(ctx, query, map[string]any{"user_id": id, "friend_id": friendId})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	if len(rows) == 0 {
		abortWith(c, errNotFound("one or both users not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"are_friends": rowBool(rows[0], "are_friends")})
}

func (s *Server) getMutualFriends(c *gin.Context) {
	ctx := c.Request.Context()
	id, otherId := c.Param("id"), c.Param("oid")

	if apiErr := s.requireUsers(c, id, otherId); apiErr != nil {
		abortWith(c, apiErr)
		return
	}

	rows, err := s.graph.Run(ctx, mutualFriendsQuery, map[string]any{"user_id": id, "other_id": otherId})
	if err != nil {
		abortWith(c, storeError(err))
		return
	}
	mutual := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		if node, ok := rowNode(row, "m"); ok {
			mutual = append(mutual, model.UserRecord(node))
		}
	}
	c.JSON(http.StatusOK, mutual)
}

// requireUsers checks that both users exist and returns the NotFound error
// naming the missing one, or nil when both are present.
func (s *Server) requireUsers(c *gin.Context, ids ...string) *apiError {
	for _, id := range ids {
		found, err := s.nodeExists(c.Request.Context(), labelUser, id)
		if err != nil {
			return storeError(err)
		}
		if !found {
			return errNotFound("user " + id + " not found")
		}
	}
	return nil
}
