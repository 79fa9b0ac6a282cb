package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	bookModel "book-inventory/internal/domains/book/model"
)

type bookSourceFunc func(ctx context.Context, search string) ([]bookModel.Book, error)

func (f bookSourceFunc) ListBooks(ctx context.Context, search string) ([]bookModel.Book, error) {
	return f(ctx, search)
}

type memoryUploader struct {
	objects map[string][]byte
}

func (m *memoryUploader) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.objects[key] = data
	return "http://minio/" + key, nil
}

func sapiens(context.Context, string) ([]bookModel.Book, error) {
	published := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	return []bookModel.Book{{
		ID:          1,
		Title:       "Sapiens",
		Stock:       12,
		Price:       decimal.RequireFromString("18.99"),
		PublishedAt: &published,
		Authors:     []string{"Yuval Noah Harari"},
		Genres:      []string{"History", "Science"},
		Languages:   []string{"English"},
	}}, nil
}

func TestBuild_OneRowPerBook(t *testing.T) {
	data, err := NewReportService(bookSourceFunc(sapiens), nil).Build(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, []string{"1", "Sapiens", "Yuval Noah Harari", "History, Science", "English", "12", "18.99", "2011-01-01"}, rows[1])
}

func TestArchive_UploadsDatedKey(t *testing.T) {
	up := &memoryUploader{objects: map[string][]byte{}}
	svc := NewReportService(bookSourceFunc(sapiens), up)

	url, err := svc.Archive(context.Background(), time.Date(2024, 3, 9, 1, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "http://minio/reports/inventory-20240309.xlsx", url)
	assert.NotEmpty(t, up.objects["reports/inventory-20240309.xlsx"])
}

func TestArchive_Errors(t *testing.T) {
	_, err := NewReportService(bookSourceFunc(sapiens), nil).Archive(context.Background(), time.Now())
	assert.Error(t, err)

	failing := bookSourceFunc(func(context.Context, string) ([]bookModel.Book, error) {
		return nil, errors.New("db down")
	})
	_, err = NewReportService(failing, &memoryUploader{objects: map[string][]byte{}}).Archive(context.Background(), time.Now())
	assert.ErrorContains(t, err, "db down")
}
