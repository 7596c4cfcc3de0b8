package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartlib-backend/internal/domains/book/model"
	"smartlib-backend/internal/domains/book/service"
	"smartlib-backend/internal/shared/response"
	"smartlib-backend/internal/shared/utils"
)

const maxListLimit = 100

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new catalog handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

func parseBookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid book ID")
		return 0, false
	}
	return id, true
}

// List handles GET /api/v1/books?skip=&limit=
func (h *Handler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, limit = utils.NormalizeOffsetLimit(skip, limit, maxListLimit)

	books, err := h.service.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.InternalServerError(c, "Failed to list books")
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Search handles GET /api/v1/books/search?query=&genre=
func (h *Handler) Search(c *gin.Context) {
	var req model.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters", err.Error())
		return
	}

	books, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Failed to search books")
		return
	}

	response.Success(c, http.StatusOK, books)
}

// GetByID handles GET /api/v1/books/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to get book")
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Create handles POST /api/v1/admin/books
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	book, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrISBNTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, model.ErrInvalidCopyCounts):
			response.ErrorResponse(c, http.StatusBadRequest, "INVALID_COPY_COUNTS", err.Error())
		default:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// Update handles PUT /api/v1/admin/books/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBookNotFound):
			response.NotFound(c, "Book not found")
		case errors.Is(err, model.ErrISBNTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, model.ErrConcurrentUpdate):
			response.Conflict(c, err.Error())
		case errors.Is(err, model.ErrInvalidCopyCounts):
			response.ErrorResponse(c, http.StatusBadRequest, "INVALID_COPY_COUNTS", err.Error())
		default:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Delete handles DELETE /api/v1/admin/books/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to delete book")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

// UploadCover handles POST /api/v1/admin/books/:id/cover (multipart form, field "cover")
func (h *Handler) UploadCover(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "Missing cover file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read cover file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Cannot read cover file")
		return
	}

	book, err := h.service.UploadCover(c.Request.Context(), id, data)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_IMAGE", "Cover upload failed", err.Error())
		return
	}

	response.Success(c, http.StatusOK, book)
}
