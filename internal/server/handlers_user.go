package server

import (
	"net/http"
)

// Me returns the authenticated user's record
func (h *Handlers) Me(w http.ResponseWriter, req *http.Request) {
	user := h.currentUser(req)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
