package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ymiyake/enquete/internal/common"
	"github.com/ymiyake/enquete/internal/server/auth"
)

// identityRequest is the body of both identity operations.
type identityRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// identityResponse is the success payload of both identity operations.
type identityResponse struct {
	IDToken      string `json:"idToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
}

// handleSignIn implements POST {auth}:signInWithPassword.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	s.identity(w, r, s.accounts.SignIn)
}

// handleSignUp implements POST {auth}:signUp.
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	s.identity(w, r, s.accounts.SignUp)
}

func (s *Server) identity(w http.ResponseWriter, r *http.Request, op accountOp) {
	if r.URL.Query().Get("key") == "" {
		writeServiceError(w, http.StatusBadRequest, "MISSING_API_KEY")
		return
	}

	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, http.StatusBadRequest, "INVALID_PAYLOAD")
		return
	}

	acc, err := op(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmailExists):
			writeServiceError(w, http.StatusBadRequest, "EMAIL_EXISTS")
		case errors.Is(err, common.ErrInvalidCredentials):
			writeServiceError(w, http.StatusBadRequest, "INVALID_LOGIN_CREDENTIALS")
		case errors.Is(err, common.ErrValidation):
			writeServiceError(w, http.StatusBadRequest, "MISSING_EMAIL_OR_PASSWORD")
		default:
			s.log.Error(r.Context(), "identity operation failed", "err", err)
			writeServiceError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
		}
		return
	}

	token, err := auth.GenerateToken(acc.LocalID, s.secretKey, s.tokenTTL)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "err", err)
		writeServiceError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		writeServiceError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{
		IDToken:      token,
		LocalID:      acc.LocalID,
		Email:        acc.Email,
		RefreshToken: refresh,
	})
}
