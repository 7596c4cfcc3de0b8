package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlib-backend/internal/domains/user/model"
	"smartlib-backend/internal/domains/user/service"
	"smartlib-backend/internal/shared/middleware"
	"smartlib-backend/internal/shared/response"
)

type UserHandler struct {
	service service.ServiceInterface
}

// NewHandler creates a new user handler
func NewHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err.Error())
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken):
			response.ErrorResponse(c, http.StatusBadRequest, "USERNAME_TAKEN", err.Error())
		case errors.Is(err, model.ErrEmailTaken):
			response.ErrorResponse(c, http.StatusBadRequest, "EMAIL_TAKEN", err.Error())
		default:
			response.InternalServerError(c, "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Me handles GET /api/v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalServerError(c, "Failed to get profile")
		return
	}

	response.Success(c, http.StatusOK, user)
}
