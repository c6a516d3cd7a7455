package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/cashbookvn/cashbook_backend/internal/platform/config"
	"github.com/cashbookvn/cashbook_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// authHandler handles registration and login.
type authHandler struct {
	userService ports.UserService
	cfg         *config.Config
}

func newAuthHandler(userService ports.UserService, cfg *config.Config) *authHandler {
	return &authHandler{userService: userService, cfg: cfg}
}

// register godoc
// @Summary Register a new user
// @Description Creates a user account. STAFF users must name their home branch.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "User registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, user)
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and issues a signed access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(user, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.cfg.JWTExpiryDuration),
		User:      dto.ToUserResponse(user),
	})
}

// me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /users/me [get]
// @Security BearerAuth
func (h *authHandler) me(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// registerAuthRoutes wires the public credential endpoints. Login and register
// share an in-memory per-IP rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *ports.ServiceContainer) {
	handler := newAuthHandler(services.User, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		// Misconfigured rate means a typo in LOGIN_RATE_LIMIT; fall back hard.
		rate = limiter.Rate{Period: time.Minute, Limit: 10}
	}
	rateLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/auth", middleware.RateLimit(rateLimiter))
	{
		auth.POST("/register", handler.register)
		auth.POST("/login", handler.login)
	}
}

// registerUserRoutes wires the authenticated user endpoints.
func registerUserRoutes(group *gin.RouterGroup, userService ports.UserService, cfg *config.Config) {
	handler := newAuthHandler(userService, cfg)
	group.GET("/users/me", handler.me)
}
