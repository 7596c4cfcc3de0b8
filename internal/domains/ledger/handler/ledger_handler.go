package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartlib-backend/internal/domains/ledger/model"
	"smartlib-backend/internal/domains/ledger/service"
	"smartlib-backend/internal/shared/middleware"
	"smartlib-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new ledger handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// IssueBook handles POST /api/v1/books/:id/issue
func (h *Handler) IssueBook(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.IssueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err.Error())
		return
	}

	issue, err := h.service.Issue(c.Request.Context(), userID, bookID, req.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBookUnavailable):
			response.ErrorResponse(c, http.StatusBadRequest, "BOOK_UNAVAILABLE", err.Error())
		case errors.Is(err, model.ErrConflict):
			response.Conflict(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to issue book")
		}
		return
	}

	response.Success(c, http.StatusCreated, issue)
}

// ReturnBook handles POST /api/v1/books/return/:issueId
func (h *Handler) ReturnBook(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	issueID, err := strconv.ParseInt(c.Param("issueId"), 10, 64)
	if err != nil || issueID <= 0 {
		response.BadRequest(c, "Invalid issue ID")
		return
	}

	issue, err := h.service.Return(c.Request.Context(), issueID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrIssueNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, model.ErrConflict):
			response.Conflict(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to return book")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Book returned successfully",
		"issue":   issue,
	})
}

// MyBooks handles GET /api/v1/my-books
func (h *Handler) MyBooks(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	issues, err := h.service.ListActiveForUser(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to list issued books")
		return
	}

	response.Success(c, http.StatusOK, issues)
}

// ListAll handles GET /api/v1/admin/book-issues?skip=&limit=
func (h *Handler) ListAll(c *gin.Context) {
	var req model.ListIssuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters", err.Error())
		return
	}

	issues, total, err := h.service.ListAll(c.Request.Context(), req.Skip, req.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to list issues")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, issues, response.Paging(req.Skip, req.Limit, total))
}
