package server

import (
	"net/http"

	"github.com/Luismorlan/sociograph/store"
	"github.com/Luismorlan/sociograph/utils/log"
	"github.com/gin-gonic/gin"
)

// apiError carries the HTTP status and client-facing message of a failed
// request. No internal error detail ever crosses the HTTP boundary; handlers
// log the cause and respond with one of these.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return e.message
}

func errValidation(msg string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: msg}
}

func errNotFound(msg string) *apiError {
	return &apiError{status: http.StatusNotFound, message: msg}
}

func errConflict(msg string) *apiError {
	return &apiError{status: http.StatusConflict, message: msg}
}

var (
	errConnection = &apiError{status: http.StatusInternalServerError, message: "database connection failed"}
	errUnexpected = &apiError{status: http.StatusInternalServerError, message: "an unexpected error occurred"}
)

// storeError translates a store-layer failure into the API taxonomy. For
// constraint violations it names the colliding field when the store's
// message mentions it.
func storeError(err error) *apiError {
	switch store.Classify(err) {
	case store.KindConnection:
		return errConnection
	case store.KindConflict:
		if store.MentionsProperty(err, "email") {
			return errConflict("email already exists")
		}
		return errConflict("a unique constraint was violated")
	default:
		log.Log.WithError(err).Error("store operation failed")
		return errUnexpected
	}
}

func abortWith(c *gin.Context, apiErr *apiError) {
	c.JSON(apiErr.status, gin.H{"error": apiErr.message})
}
