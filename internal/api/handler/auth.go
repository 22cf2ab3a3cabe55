package handler

import (
	"encoding/json"
	"net/http"

	"github.com/transferhub/transferhub-go/internal/api/apierr"
	"github.com/transferhub/transferhub-go/internal/api/request"
	"github.com/transferhub/transferhub-go/internal/api/response"
	"github.com/transferhub/transferhub-go/internal/services/auth"
)

// Credential constraints enforced at the boundary
const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// AuthHandler handles registration and token issuance
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/v1/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if len(req.Username) < minUsernameLength {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username must be at least 3 characters"))
		return
	}
	if len(req.Password) < minPasswordLength {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password must be at least 6 characters"))
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Token handles POST /api/v1/token
// Credentials arrive form-encoded, OAuth2 password-flow style.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid form body"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username and password are required"))
		return
	}

	token, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewToken(token))
}
