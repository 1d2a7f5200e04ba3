package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mindfulpath/backend/internal/dto"
	"github.com/mindfulpath/backend/internal/middleware"
	"github.com/mindfulpath/backend/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// bindingError maps a gin binding failure to the validation error shape,
// naming the first violated field when the validator reports one.
func bindingError(err error) dto.ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field()[:1]) + verrs[0].Field()[1:]
		return dto.ErrorResponse{Message: "Invalid value for " + field, Field: field}
	}
	return dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user and signs them in. Usernames are unique.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure or username taken"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Register: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	user, err := c.authService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Username already exists", Field: "username"})
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Register: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to register"})
		return
	}

	// Registration signs the user in.
	if err := setSessionUser(ctx, user.ID); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Register: failed to save session")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to establish session"})
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid username or password"})
		return
	}

	user, err := c.authService.Login(req.Username, req.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid username or password"})
		return
	}

	if err := setSessionUser(ctx, user.ID); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Login: failed to save session")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to establish session"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary End the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := clearSession(ctx); err != nil {
		log.Error().Err(err).Msg("Logout: failed to clear session")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to log out"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /user [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, _ := middleware.SessionUserID(ctx)

	user, err := c.authService.GetUser(userID)
	if err != nil {
		// A stale session pointing at a vanished user reads as unauthenticated.
		// Drop the cookie so the client stops replaying it.
		if err := clearSession(ctx); err != nil {
			log.Warn().Err(err).Uint("userID", userID).Msg("Me: failed to clear stale session")
		}
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func setSessionUser(ctx *gin.Context, userID uint) error {
	session := sessions.Default(ctx)
	session.Set(middleware.SessionUserKey, userID)
	return session.Save()
}

func clearSession(ctx *gin.Context) error {
	session := sessions.Default(ctx)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	return session.Save()
}
