// Package handlers implements the HTTP handlers for the Crop Portal API.
package handlers

import (
	"net/http"

	"github.com/cropportal/backend/internal/auth"
	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/models"
	"github.com/cropportal/backend/internal/service"
	"github.com/cropportal/backend/internal/utils"
)

// AuthHandler handles registration, login and token verification.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, token, err := h.authService.RegisterUser(r.Context(), &reg)
	if err != nil {
		appErr := utils.ParseError(err)
		if appErr.StatusCode == http.StatusInternalServerError {
			utils.Error(w, http.StatusInternalServerError, constants.MsgRegistrationFailed)
			return
		}
		utils.ErrorFromAppError(w, appErr)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Summary(),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.UserCredentials
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, token, err := h.authService.AuthenticateUser(r.Context(), &creds)
	if err != nil {
		appErr := utils.ParseError(err)
		if appErr.StatusCode == http.StatusInternalServerError {
			utils.Error(w, http.StatusInternalServerError, constants.MsgLoginFailed)
			return
		}
		utils.ErrorFromAppError(w, appErr)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user.Summary(),
	})
}

// Verify handles GET /api/auth/verify. The route sits behind the auth
// middleware, so reaching this handler means the token was accepted.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.GetEmail(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}
	name, _ := auth.GetName(r)

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user": map[string]string{
			"email": email,
			"name":  name,
		},
	})
}
