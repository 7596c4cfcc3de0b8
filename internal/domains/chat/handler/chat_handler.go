package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlib-backend/internal/domains/chat/model"
	"smartlib-backend/internal/domains/chat/service"
	"smartlib-backend/internal/shared/middleware"
	"smartlib-backend/internal/shared/response"
)

type ChatHandler struct {
	service service.ServiceInterface
}

// NewHandler creates a new chat handler
func NewHandler(service service.ServiceInterface) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err.Error())
		return
	}

	result, err := h.service.Chat(c.Request.Context(), userID, req)
	if err != nil {
		response.InternalServerError(c, "Failed to process chat message")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// History handles GET /api/v1/chat/history
func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	entries, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to load chat history")
		return
	}

	response.Success(c, http.StatusOK, entries)
}
