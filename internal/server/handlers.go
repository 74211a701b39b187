package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/smarthydra/hydrasvc/internal/database"
)

// Handlers contains all HTTP handlers for the API server
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
	}
}

// currentUser extracts the authenticated user from the request context
func (h *Handlers) currentUser(req *http.Request) *database.User {
	if user, ok := req.Context().Value(userContextKey).(*database.User); ok {
		return user
	}
	return nil
}

// pathID parses a numeric path variable. The router patterns constrain
// these to digits, so a parse failure means a routing bug.
func pathID(req *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(req)[name], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
