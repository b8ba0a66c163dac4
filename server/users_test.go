package server

import (
	"net/http"
	"testing"

	"github.com/Luismorlan/sociograph/store"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := &fakeGraph{}
		f.onRows("CREATE (u:User", store.Row{"u": userNode("u-1", "Ann", "ann@x.com")})
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodPost, "/users", map[string]string{"name": "Ann", "email": "ann@x.com"})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		require.Equal(t, "u-1", body["id"])
		require.Equal(t, "Ann", body["name"])
		require.Equal(t, "ann@x.com", body["email"])
		require.Equal(t, "2023-04-12T09:30:00Z", body["created_at"])

		// The generated id and a creation timestamp travel as parameters.
		require.NotEmpty(t, f.params[0]["id"])
		require.NotNil(t, f.params[0]["created_at"])
	})

	t.Run("missing email", func(t *testing.T) {
		f := &fakeGraph{}
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodPost, "/users", map[string]string{"name": "Ann"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Empty(t, f.queries)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := &fakeGraph{}
		f.onErr("CREATE (u:User", &db.Neo4jError{
			Code: "Neo.ClientError.Schema.ConstraintValidationFailed",
			Msg:  "Node already exists with label `User` and property `email` = 'ann@x.com'",
		})
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodPost, "/users", map[string]string{"name": "Ann", "email": "ann@x.com"})
		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, "email already exists", decodeBody(t, w)["error"])
	})
}

func TestListUsers(t *testing.T) {
	f := &fakeGraph{}
	f.onRows("MATCH (u:User) RETURN u",
		store.Row{"u": userNode("u-1", "Ann", "ann@x.com")},
		store.Row{"u": userNode("u-2", "Bob", "bob@x.com")},
	)
	router := newTestRouter(f)

	w := doRequest(t, router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	users := decodeList(t, w)
	require.Len(t, users, 2)
	require.Equal(t, "Ann", users[0]["name"])
	require.Equal(t, "Bob", users[1]["name"])
	require.True(t, f.ran("ORDER BY u.name"))
}

func TestGetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := &fakeGraph{}
		f.onRows("MATCH (u:User {id: $id}) RETURN u", store.Row{"u": userNode("u-1", "Ann", "ann@x.com")})
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodGet, "/users/u-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "u-1", decodeBody(t, w)["id"])
	})

	t.Run("absent", func(t *testing.T) {
		router := newTestRouter(&fakeGraph{})

		w := doRequest(t, router, http.MethodGet, "/users/nope", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		f := &fakeGraph{}
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodPut, "/users/u-1", map[string]string{})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Empty(t, f.queries)
	})

	t.Run("partial update sets only supplied field", func(t *testing.T) {
		f := &fakeGraph{}
		f.onRows("SET u.name = $name", store.Row{"u": userNode("u-1", "Bob", "ann@x.com")})
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodPut, "/users/u-1", map[string]string{"name": "Bob"})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "Bob", decodeBody(t, w)["name"])

		require.Contains(t, f.queries[0], "u.name = $name")
		require.NotContains(t, f.queries[0], "u.email")
		require.Equal(t, "u-1", f.params[0]["id"])
	})

	t.Run("absent", func(t *testing.T) {
		router := newTestRouter(&fakeGraph{})

		w := doRequest(t, router, http.MethodPut, "/users/nope", map[string]string{"name": "Bob"})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("email collision", func(t *testing.T) {
		f := &fakeGraph{}
		f.onErr("SET u.email = $email", &db.Neo4jError{
			Code: "Neo.ClientError.Schema.ConstraintValidationFailed",
			Msg:  "Node already exists with label `User` and property `email` = 'bob@x.com'",
		})
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodPut, "/users/u-1", map[string]string{"email": "bob@x.com"})
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		f := &fakeGraph{}
		f.onExists(labelUser, nil)
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodDelete, "/users/nope", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.False(t, f.ran("DETACH DELETE"))
	})

	t.Run("success", func(t *testing.T) {
		f := &fakeGraph{}
		f.onExists(labelUser, map[string]bool{"u-1": true})
		router := newTestRouter(f)

		w := doRequest(t, router, http.MethodDelete, "/users/u-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, f.ran("MATCH (u:User {id: $id}) DETACH DELETE u"))
	})
}
