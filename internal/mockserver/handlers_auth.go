package mockserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// minPasswordLen mirrors the backend's validation threshold.
const minPasswordLen = 3

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(body.Email))
	if email == "" || !strings.Contains(email, "@") {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid email address")
		return
	}
	if len(body.Password) < minPasswordLen {
		writeDetail(w, http.StatusBadRequest, map[string]any{
			"code":   "REGISTER_INVALID_PASSWORD",
			"reason": "password is too short",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "hashing failed")
		return
	}

	user, err := s.store.CreateUser(email, hash)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeDetail(w, http.StatusBadRequest, "REGISTER_USER_ALREADY_EXISTS")
			return
		}
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info(r.Context(), "user registered", "email", email)
	writeJSON(w, http.StatusCreated, userJSON(user))
}

// handleLogin accepts form-encoded or multipart credentials under the
// fastapi-users field names "username" and "password". On success it sets
// the session cookie; the body is empty.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid form")
			return
		}
	} else if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form")
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("username")))
	password := r.FormValue("password")

	user, err := s.store.UserByEmail(email)
	if err != nil || bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)) != nil {
		writeDetail(w, http.StatusBadRequest, "LOGIN_BAD_CREDENTIALS")
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "token signing failed")
		return
	}

	http.SetCookie(w, sessionCookie(token, tokenSeconds()))
	s.log.Info(r.Context(), "user logged in", "email", email)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userJSON(currentUser(r)))
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	// Token issuance is logged instead of mailed; whether the account exists
	// is never revealed to the caller.
	if user, err := s.store.UserByEmail(strings.ToLower(body.Email)); err == nil {
		token := s.store.IssueResetToken(user.ID)
		s.log.Info(r.Context(), "password reset requested", "email", user.Email, "token", token)
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if len(body.Password) < minPasswordLen {
		writeDetail(w, http.StatusBadRequest, map[string]any{
			"code":   "RESET_PASSWORD_INVALID_PASSWORD",
			"reason": "password is too short",
		})
		return
	}

	userID, err := s.store.ConsumeResetToken(body.Token)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "RESET_PASSWORD_BAD_TOKEN")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "hashing failed")
		return
	}
	if err := s.store.SetPassword(userID, hash); err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

func tokenSeconds() int {
	return int(tokenLifetime.Seconds())
}
