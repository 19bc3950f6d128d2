package handlers

import (
	"github.com/gin-gonic/gin"

	"hospital-appointment-server/internal/config"
	"hospital-appointment-server/internal/middleware"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/services"
	"hospital-appointment-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Auth *services.AuthService
	Cfg  *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Auth: auth, Cfg: cfg}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for a successful login.
type LoginResponse struct {
	PrincipalID uint        `json:"principalId"`
	Role        models.Role `json:"role"`
	Token       string      `json:"token"`
}

// Login authenticates a principal and issues the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	principal, err := h.Auth.Authenticate(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateSessionToken(principal.ID, principal.Role, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to create session: "+err.Error())
		return
	}

	c.SetCookie(
		middleware.SessionCookieName,
		token,
		h.Cfg.SessionTTLHours*60*60,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	utils.Success(c, "Login successful", LoginResponse{
		PrincipalID: principal.ID,
		Role:        principal.Role,
		Token:       token,
	})
}

// RegisterRequest represents the request body for patient self-registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName"`
	Contact  string `json:"contact"`
}

// Register creates a patient account. The username must be free across the
// admin, doctor and patient tables.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Auth.RegisterPatient(req.Username, req.Password, req.FullName, req.Contact)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Registration successful, please log in", patient)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(
		middleware.SessionCookieName,
		"",
		-1,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)
	utils.Success(c, "You have been logged out", nil)
}
