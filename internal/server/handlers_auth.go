package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/smarthydra/hydrasvc/internal/auth"
	"github.com/smarthydra/hydrasvc/internal/database"
	"github.com/smarthydra/hydrasvc/internal/log"
)

// defaultTokenTTL is the lifetime of tokens issued without an explicit
// expire_minutes value.
const defaultTokenTTL = 1440 * time.Minute

// Login handles credential checks and token issuance
func (h *Handlers) Login(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed form body")
		return
	}

	username := req.PostFormValue("username")
	password := req.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	ttl := defaultTokenTTL
	if v := req.PostFormValue("expire_minutes"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			writeError(w, http.StatusUnprocessableEntity, "expire_minutes must be a positive integer")
			return
		}
		ttl = time.Duration(minutes) * time.Minute
	}

	user, err := h.controller.DB.GetUserByUsername(req.Context(), username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Errorf("error looking up user %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !auth.CheckPassword(user.Password, password) {
		writeError(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	token, err := h.controller.Tokens.Issue(username, ttl)
	if err != nil {
		log.Errorf("error issuing token for %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Register creates a new user account and returns a token
func (h *Handlers) Register(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed form body")
		return
	}

	username := req.PostFormValue("username")
	password := req.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	role := database.UserRole(req.PostFormValue("role"))
	if role == "" {
		role = database.RoleUser
	}
	if !database.ValidRole(role) {
		writeError(w, http.StatusUnprocessableEntity, "invalid role")
		return
	}

	_, err := h.controller.DB.GetUserByUsername(req.Context(), username)
	if err == nil {
		writeError(w, http.StatusConflict, "user already exists")
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		log.Errorf("error looking up user %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Errorf("error hashing password for %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &database.User{
		Username: username,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := h.controller.DB.CreateUser(req.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.controller.Tokens.Issue(username, defaultTokenTTL)
	if err != nil {
		log.Errorf("error issuing token for %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
