package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"smartlib-backend/internal/domains/book/model"
	"smartlib-backend/internal/domains/book/repository"
	"smartlib-backend/internal/infrastructure/cache"
	"smartlib-backend/internal/infrastructure/storage"
	"smartlib-backend/pkg/logger"
)

const (
	snapshotCacheKey = "catalog:snapshot"
	snapshotCacheTTL = 60 * time.Second

	// snapshotScanLimit bounds how much of the catalog feeds the assistant
	snapshotScanLimit = 1000
)

type bookService struct {
	repo      repository.RepositoryInterface
	cache     *cache.RedisClient
	storage   *storage.MinIOStorage
	processor *storage.ImageProcessor
}

// NewService creates a new catalog service.
// cache and store may be nil in tests; the service degrades gracefully.
func NewService(
	repo repository.RepositoryInterface,
	redisCache *cache.RedisClient,
	store *storage.MinIOStorage,
) ServiceInterface {
	return &bookService{
		repo:      repo,
		cache:     redisCache,
		storage:   store,
		processor: storage.NewImageProcessor(),
	}
}

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	total := 1
	if req.TotalCopies != nil {
		total = *req.TotalCopies
	}
	available := total
	if req.AvailableCopies != nil {
		available = *req.AvailableCopies
	}
	if available < 0 || available > total {
		return nil, model.ErrInvalidCopyCounts
	}

	book := &model.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Description:     req.Description,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		TotalCopies:     total,
		AvailableCopies: available,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.InvalidateSnapshot(ctx)

	resp := book.ToResponse()
	return &resp, nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := book.ToResponse()
	return &resp, nil
}

func (s *bookService) List(ctx context.Context, offset, limit int) ([]model.BookResponse, error) {
	books, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(books), nil
}

func (s *bookService) Search(ctx context.Context, req model.SearchBooksRequest) ([]model.BookResponse, error) {
	books, err := s.repo.Search(ctx, req.Query, req.Genre)
	if err != nil {
		return nil, err
	}
	return model.ToResponseList(books), nil
}

// updateRetries bounds re-reads when the copy counters move under an update
const updateRetries = 3

func (s *bookService) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var book *model.Book
	for attempt := 0; attempt < updateRetries; attempt++ {
		var err error
		book, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		prevTotal, prevAvailable := book.TotalCopies, book.AvailableCopies

		if req.Title != nil {
			book.Title = *req.Title
		}
		if req.Author != nil {
			book.Author = *req.Author
		}
		if req.ISBN != nil {
			book.ISBN = req.ISBN
		}
		if req.Description != nil {
			book.Description = req.Description
		}
		if req.Genre != nil {
			book.Genre = req.Genre
		}
		if req.PublicationYear != nil {
			book.PublicationYear = req.PublicationYear
		}

		// Copies currently out must survive a total_copies change:
		// shrink/grow available_copies by the same delta.
		if req.TotalCopies != nil {
			delta := *req.TotalCopies - book.TotalCopies
			book.TotalCopies = *req.TotalCopies
			book.AvailableCopies += delta
		}
		if req.AvailableCopies != nil {
			book.AvailableCopies = *req.AvailableCopies
		}
		if book.AvailableCopies < 0 || book.AvailableCopies > book.TotalCopies {
			return nil, model.ErrInvalidCopyCounts
		}

		err = s.repo.Update(ctx, book, prevTotal, prevAvailable)
		if err == nil {
			break
		}
		// A lending operation moved the counters between our read and
		// write; re-read and re-apply instead of clobbering its change.
		if err == model.ErrConcurrentUpdate && attempt < updateRetries-1 {
			continue
		}
		if err == model.ErrConcurrentUpdate {
			return nil, err
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.InvalidateSnapshot(ctx)

	resp := book.ToResponse()
	return &resp, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Drop stored cover variants; failure is non-critical
	if s.storage != nil {
		if err := s.storage.DeleteByPrefix(ctx, fmt.Sprintf("covers/%d/", id)); err != nil {
			logger.Error("failed to delete cover images", err)
		}
	}

	s.InvalidateSnapshot(ctx)
	return nil
}

func (s *bookService) UploadCover(ctx context.Context, id int64, data []byte) (*model.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.storage == nil {
		return nil, fmt.Errorf("cover storage is not configured")
	}

	if err := s.processor.ValidateImage(data); err != nil {
		return nil, err
	}

	variants, err := s.processor.ProcessCover(data)
	if err != nil {
		return nil, err
	}

	var coverURL string
	for name, content := range variants {
		key := fmt.Sprintf("covers/%d/%s.jpg", id, name)
		url, err := s.storage.Upload(ctx, key, content, "image/jpeg")
		if err != nil {
			return nil, fmt.Errorf("upload cover %s: %w", name, err)
		}
		if name == "original" {
			coverURL = url
		}
	}

	if err := s.repo.UpdateCoverURL(ctx, id, coverURL); err != nil {
		return nil, err
	}

	book.CoverURL = &coverURL
	resp := book.ToResponse()
	return &resp, nil
}

func (s *bookService) Snapshot(ctx context.Context) (*model.LibrarySnapshot, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, snapshotCacheKey); err == nil {
			var snap model.LibrarySnapshot
			if err := json.Unmarshal([]byte(cached), &snap); err == nil {
				return &snap, nil
			}
		} else if err != redis.Nil {
			logger.Error("snapshot cache read failed", err)
		}
	}

	books, err := s.repo.List(ctx, 0, snapshotScanLimit)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	snap := &model.LibrarySnapshot{
		TotalTitles: len(books),
		Genres:      make(map[string]int),
		Books:       make([]model.BookSummary, 0, len(books)),
	}
	for i := range books {
		b := &books[i]
		snap.TotalCopies += b.TotalCopies
		snap.AvailableCopies += b.AvailableCopies
		if b.Genre != nil && *b.Genre != "" {
			snap.Genres[*b.Genre]++
		}
		snap.Books = append(snap.Books, b.Summarize())
	}
	snap.IssuedCopies = snap.TotalCopies - snap.AvailableCopies

	if s.cache != nil {
		if payload, err := json.Marshal(snap); err == nil {
			if err := s.cache.Set(ctx, snapshotCacheKey, payload, snapshotCacheTTL); err != nil {
				logger.Error("snapshot cache write failed", err)
			}
		}
	}

	return snap, nil
}

func (s *bookService) InvalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, snapshotCacheKey); err != nil {
		logger.Error("snapshot cache invalidation failed", err)
	}
}
