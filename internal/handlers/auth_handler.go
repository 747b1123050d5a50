package handlers

import (
	"encoding/json"
	"net/http"

	"church-admin/internal/middleware"
	"church-admin/internal/models"
	"church-admin/internal/services"
	"church-admin/internal/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *services.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate}
}

// @Summary Log in
// @Description Exchange email and password for access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	accessToken, refreshToken, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		utils.Log.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		models.RespondWithDomainError(w, err)
		return
	}

	models.RespondWithJSON(w, http.StatusOK, &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}

// @Summary Register a user
// @Description Create an account and return its first access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "New account"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Register(&req)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}

	models.RespondWithJSON(w, http.StatusCreated, &models.RegisterResponse{
		ID:          user.ID,
		Email:       user.Email,
		Role:        user.Role,
		IsActive:    user.IsActive,
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// @Summary Refresh the access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}

	models.RespondWithJSON(w, http.StatusOK, &models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		models.RespondWithError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	models.RespondWithJSON(w, http.StatusOK, user)
}
