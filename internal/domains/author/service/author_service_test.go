package service

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"book-inventory/internal/domains/author/model"
	bookModel "book-inventory/internal/domains/book/model"
	"book-inventory/internal/shared/catalogcache"
	"book-inventory/pkg/cache"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) List(ctx context.Context) ([]model.Author, error) {
	args := m.Called(ctx)
	authors, _ := args.Get(0).([]model.Author)
	return authors, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Author)
	return a, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, a *model.Author) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id int64, upd model.AuthorUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type bookListerFunc func(ctx context.Context, e bookModel.Entity, id int64) ([]bookModel.Book, error)

func (f bookListerFunc) ListBooksByEntity(ctx context.Context, e bookModel.Entity, id int64) ([]bookModel.Book, error) {
	return f(ctx, e, id)
}

func noBooks(context.Context, bookModel.Entity, int64) ([]bookModel.Book, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

var ctxAny = mock.Anything

func TestList_FormatsAndCaches(t *testing.T) {
	repo := new(mockRepo)
	mem := cache.NewMemoryCache()
	svc := NewAuthorService(repo, bookListerFunc(noBooks), mem, time.Minute)

	repo.On("List", ctxAny).Return([]model.Author{
		{ID: 1, Name: "yuval noah harari", Gender: strPtr("male")},
		{ID: 2, Name: "e. b. white"},
	}, nil).Once()

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Yuval Noah Harari", first[0].Name)
	assert.Equal(t, "Male", first[0].Gender)
	assert.Equal(t, "E. B. White", first[1].Name)
	assert.Equal(t, "N/A", first[1].Gender)
	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestGet_DetailDefaults(t *testing.T) {
	repo := new(mockRepo)
	svc := NewAuthorService(repo, bookListerFunc(noBooks), cache.NewMemoryCache(), time.Minute)

	repo.On("GetByID", ctxAny, int64(1)).Return(&model.Author{ID: 1, Name: "Yuval Noah Harari"}, nil)

	d, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "N/A", d.Gender)
	assert.Equal(t, "N/A", d.Nationality)
	assert.Equal(t, "N/A", d.DOB)
	assert.Equal(t, "No Biography.", d.Bio)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := NewAuthorService(repo, bookListerFunc(noBooks), nil, time.Minute)

	repo.On("GetByID", ctxAny, int64(5)).Return(nil, model.ErrAuthorNotFound)

	_, err := svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)

	_, err = svc.Get(context.Background(), -1)
	assert.ErrorIs(t, err, model.ErrInvalidAuthorID)
}

func TestBooksByAuthor(t *testing.T) {
	repo := new(mockRepo)
	var gotEntity bookModel.Entity
	books := bookListerFunc(func(_ context.Context, e bookModel.Entity, id int64) ([]bookModel.Book, error) {
		gotEntity = e
		return []bookModel.Book{{ID: 1, Title: "sapiens", Stock: 1200}}, nil
	})
	svc := NewAuthorService(repo, books, cache.NewMemoryCache(), time.Minute)

	repo.On("GetByID", ctxAny, int64(1)).Return(&model.Author{ID: 1, Name: "Yuval"}, nil)
	repo.On("GetByID", ctxAny, int64(2)).Return(nil, model.ErrAuthorNotFound)

	items, err := svc.BooksByAuthor(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sapiens", items[0].Title)
	assert.Equal(t, "1.2K", items[0].Stock)
	assert.Equal(t, bookModel.Authors, gotEntity)

	_, err = svc.BooksByAuthor(context.Background(), 2)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestCreate_ValidatesAndInvalidates(t *testing.T) {
	repo := new(mockRepo)
	mem := cache.NewMemoryCache()
	svc := NewAuthorService(repo, bookListerFunc(noBooks), mem, time.Minute)
	require.NoError(t, mem.Set(context.Background(), catalogcache.KeyAllAuthors, "stale", time.Minute))

	repo.On("Create", ctxAny, mock.MatchedBy(func(a *model.Author) bool {
		return a.Name == "Ada Lovelace" && a.Gender != nil && *a.Gender == "female"
	})).Return(int64(4), nil)
	repo.On("GetByID", ctxAny, int64(4)).Return(&model.Author{ID: 4, Name: "Ada Lovelace", Gender: strPtr("female")}, nil)

	d, err := svc.Create(context.Background(), model.CreateAuthorRequest{Name: " Ada Lovelace ", Gender: strPtr("Female")})

	require.NoError(t, err)
	assert.Equal(t, "Female", d.Gender)
	var v any
	found, _ := mem.Get(context.Background(), catalogcache.KeyAllAuthors, &v)
	assert.False(t, found)
}

func TestCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		req   model.CreateAuthorRequest
		field string
	}{
		{"missing name", model.CreateAuthorRequest{}, "name"},
		{"bad gender", model.CreateAuthorRequest{Name: "X", Gender: strPtr("other")}, "gender"},
		{"nationality with digits", model.CreateAuthorRequest{Name: "X", Nationality: strPtr("Isr4eli")}, "nationality"},
		{"bad dob", model.CreateAuthorRequest{Name: "X", DOB: strPtr("24/02/1976")}, "dob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			svc := NewAuthorService(repo, bookListerFunc(noBooks), nil, time.Minute)

			_, err := svc.Create(context.Background(), tt.req)

			var verrs validation.Errors
			require.True(t, errors.As(err, &verrs), "got %v", err)
			assert.Contains(t, verrs, tt.field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdate(t *testing.T) {
	repo := new(mockRepo)
	svc := NewAuthorService(repo, bookListerFunc(noBooks), cache.NewMemoryCache(), time.Minute)

	_, err := svc.Update(context.Background(), 1, model.UpdateAuthorRequest{})
	assert.ErrorIs(t, err, model.ErrNothingToUpdate)

	repo.On("Update", ctxAny, int64(1), mock.MatchedBy(func(u model.AuthorUpdate) bool {
		return u.DOB != nil && u.DOB.Year() == 1976 && u.Name == nil
	})).Return(nil)
	repo.On("GetByID", ctxAny, int64(1)).Return(&model.Author{ID: 1, Name: "Yuval"}, nil)

	_, err = svc.Update(context.Background(), 1, model.UpdateAuthorRequest{DOB: strPtr("1976-02-24")})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDelete_ConflictKeepsCache(t *testing.T) {
	repo := new(mockRepo)
	mem := cache.NewMemoryCache()
	svc := NewAuthorService(repo, bookListerFunc(noBooks), mem, time.Minute)
	require.NoError(t, mem.Set(context.Background(), catalogcache.KeyAllAuthors, "cached", time.Minute))

	repo.On("Delete", ctxAny, int64(1)).Return(model.ErrAuthorHasBooks)
	repo.On("Delete", ctxAny, int64(2)).Return(nil)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, model.ErrAuthorHasBooks)
	assert.Equal(t, 409, model.ToHTTPStatus(err))
	assert.Equal(t, model.HasBooksMessage, model.ToMessage(err))

	var v any
	found, _ := mem.Get(context.Background(), catalogcache.KeyAllAuthors, &v)
	assert.True(t, found)

	require.NoError(t, svc.Delete(context.Background(), 2))
	found, _ = mem.Get(context.Background(), catalogcache.KeyAllAuthors, &v)
	assert.False(t, found)
}
