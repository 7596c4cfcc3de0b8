package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlib-backend/internal/domains/book/model"
	"smartlib-backend/internal/domains/book/repository"
)

type mockBookRepo struct {
	createFn  func(ctx context.Context, book *model.Book) error
	getByIDFn func(ctx context.Context, id int64) (*model.Book, error)
	listFn    func(ctx context.Context, offset, limit int) ([]model.Book, error)
	searchFn  func(ctx context.Context, query, genre string) ([]model.Book, error)
	updateFn  func(ctx context.Context, book *model.Book, prevTotal, prevAvailable int) error
	deleteFn  func(ctx context.Context, id int64) error
}

var _ repository.RepositoryInterface = (*mockBookRepo)(nil)

func (m *mockBookRepo) Create(ctx context.Context, book *model.Book) error {
	if m.createFn == nil {
		book.ID = 1
		return nil
	}
	return m.createFn(ctx, book)
}

func (m *mockBookRepo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	if m.getByIDFn == nil {
		return nil, model.ErrBookNotFound
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockBookRepo) List(ctx context.Context, offset, limit int) ([]model.Book, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, offset, limit)
}

func (m *mockBookRepo) Search(ctx context.Context, query, genre string) ([]model.Book, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, query, genre)
}

func (m *mockBookRepo) Update(ctx context.Context, book *model.Book, prevTotal, prevAvailable int) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, book, prevTotal, prevAvailable)
}

func (m *mockBookRepo) UpdateCoverURL(context.Context, int64, string) error { return nil }

func (m *mockBookRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func intPtr(v int) *int { return &v }

func TestCreate_DefaultsToSingleCopy(t *testing.T) {
	var created *model.Book
	repo := &mockBookRepo{
		createFn: func(_ context.Context, book *model.Book) error {
			book.ID = 1
			created = book
			return nil
		},
	}
	svc := NewService(repo, nil, nil)

	resp, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:  "Dune",
		Author: "Frank Herbert",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalCopies)
	assert.Equal(t, 1, resp.AvailableCopies)
	require.NotNil(t, created)
	assert.Equal(t, 1, created.AvailableCopies)
}

func TestCreate_AvailableDefaultsToTotal(t *testing.T) {
	svc := NewService(&mockBookRepo{}, nil, nil)

	resp, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:       "Dune",
		Author:      "Frank Herbert",
		TotalCopies: intPtr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalCopies)
	assert.Equal(t, 5, resp.AvailableCopies)
}

func TestCreate_RejectsAvailableAboveTotal(t *testing.T) {
	svc := NewService(&mockBookRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:           "Dune",
		Author:          "Frank Herbert",
		TotalCopies:     intPtr(2),
		AvailableCopies: intPtr(3),
	})
	assert.ErrorIs(t, err, model.ErrInvalidCopyCounts)
}

func TestCreate_RejectsMissingTitle(t *testing.T) {
	svc := NewService(&mockBookRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), model.CreateBookRequest{Author: "Frank Herbert"})
	assert.Error(t, err)
}

func existingBook() *model.Book {
	return &model.Book{
		ID:              1,
		Title:           "Dune",
		Author:          "Frank Herbert",
		TotalCopies:     5,
		AvailableCopies: 3, // two copies are out
	}
}

func TestUpdate_TotalCopiesDeltaPreservesIssuedCopies(t *testing.T) {
	var updated *model.Book
	repo := &mockBookRepo{
		getByIDFn: func(context.Context, int64) (*model.Book, error) { return existingBook(), nil },
		updateFn: func(_ context.Context, book *model.Book, _, _ int) error {
			updated = book
			return nil
		},
	}
	svc := NewService(repo, nil, nil)

	resp, err := svc.Update(context.Background(), 1, model.UpdateBookRequest{
		TotalCopies: intPtr(7),
	})
	require.NoError(t, err)

	// Growing the pool by 2 grows availability by 2; the two issued
	// copies stay accounted for
	assert.Equal(t, 7, resp.TotalCopies)
	assert.Equal(t, 5, resp.AvailableCopies)
	require.NotNil(t, updated)
	assert.Equal(t, 5, updated.AvailableCopies)
}

func TestUpdate_ShrinkBelowIssuedRejected(t *testing.T) {
	repo := &mockBookRepo{
		getByIDFn: func(context.Context, int64) (*model.Book, error) { return existingBook(), nil },
	}
	svc := NewService(repo, nil, nil)

	// 1 total copy with 2 copies out would drive available negative
	_, err := svc.Update(context.Background(), 1, model.UpdateBookRequest{
		TotalCopies: intPtr(1),
	})
	assert.ErrorIs(t, err, model.ErrInvalidCopyCounts)
}

func TestUpdate_ExplicitAvailableValidatedAgainstTotal(t *testing.T) {
	repo := &mockBookRepo{
		getByIDFn: func(context.Context, int64) (*model.Book, error) { return existingBook(), nil },
	}
	svc := NewService(repo, nil, nil)

	_, err := svc.Update(context.Background(), 1, model.UpdateBookRequest{
		AvailableCopies: intPtr(9),
	})
	assert.ErrorIs(t, err, model.ErrInvalidCopyCounts)
}

func TestUpdate_PartialFieldsKeepRest(t *testing.T) {
	repo := &mockBookRepo{
		getByIDFn: func(context.Context, int64) (*model.Book, error) { return existingBook(), nil },
	}
	svc := NewService(repo, nil, nil)

	newTitle := "Dune Messiah"
	resp, err := svc.Update(context.Background(), 1, model.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "Dune Messiah", resp.Title)
	assert.Equal(t, "Frank Herbert", resp.Author)
	assert.Equal(t, 5, resp.TotalCopies)
	assert.Equal(t, 3, resp.AvailableCopies)
}

func TestUpdate_RetriesAfterConcurrentCounterChange(t *testing.T) {
	// A borrower takes a copy between the admin's read and write: the
	// first write misses its counter guard, the retry re-reads the
	// post-borrow state and applies the edit on top of it.
	reads := 0
	var updated *model.Book
	repo := &mockBookRepo{
		getByIDFn: func(context.Context, int64) (*model.Book, error) {
			reads++
			book := existingBook()
			if reads > 1 {
				book.AvailableCopies = 2
			}
			return book, nil
		},
		updateFn: func(_ context.Context, book *model.Book, _, prevAvailable int) error {
			if prevAvailable == 3 {
				return model.ErrConcurrentUpdate
			}
			updated = book
			return nil
		},
	}
	svc := NewService(repo, nil, nil)

	newTitle := "Dune Messiah"
	resp, err := svc.Update(context.Background(), 1, model.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, 2, reads)
	assert.Equal(t, "Dune Messiah", resp.Title)
	// The borrow that won the race survives the title edit
	assert.Equal(t, 2, resp.AvailableCopies)
	require.NotNil(t, updated)
	assert.Equal(t, 2, updated.AvailableCopies)
}

func TestUpdate_PersistentConflictSurfaces(t *testing.T) {
	attempts := 0
	repo := &mockBookRepo{
		getByIDFn: func(context.Context, int64) (*model.Book, error) { return existingBook(), nil },
		updateFn: func(context.Context, *model.Book, int, int) error {
			attempts++
			return model.ErrConcurrentUpdate
		},
	}
	svc := NewService(repo, nil, nil)

	newTitle := "Dune Messiah"
	_, err := svc.Update(context.Background(), 1, model.UpdateBookRequest{Title: &newTitle})
	assert.ErrorIs(t, err, model.ErrConcurrentUpdate)
	assert.Equal(t, 3, attempts)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(&mockBookRepo{}, nil, nil)

	_, err := svc.Update(context.Background(), 99, model.UpdateBookRequest{})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestSnapshot_AggregatesCatalog(t *testing.T) {
	genre := "Fiction"
	repo := &mockBookRepo{
		listFn: func(context.Context, int, int) ([]model.Book, error) {
			return []model.Book{
				{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: &genre, TotalCopies: 3, AvailableCopies: 1},
				{ID: 2, Title: "Foundation", Author: "Isaac Asimov", Genre: &genre, TotalCopies: 2, AvailableCopies: 2},
				{ID: 3, Title: "Untitled", Author: "Anon", TotalCopies: 1, AvailableCopies: 1},
			}, nil
		},
	}
	svc := NewService(repo, nil, nil)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, snap.TotalTitles)
	assert.Equal(t, 6, snap.TotalCopies)
	assert.Equal(t, 4, snap.AvailableCopies)
	assert.Equal(t, 2, snap.IssuedCopies)
	assert.Equal(t, map[string]int{"Fiction": 2}, snap.Genres)
	require.Len(t, snap.Books, 3)
	assert.Equal(t, "Unknown", snap.Books[2].Genre)
	assert.Equal(t, "No description available", snap.Books[2].Description)
}
