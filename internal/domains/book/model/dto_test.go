package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func validCreate() CreateBookRequest {
	return CreateBookRequest{
		Title:     "sapiens",
		Stock:     intPtr(12),
		Price:     "24.99",
		Authors:   NameList{"Yuval Noah Harari"},
		Genres:    NameList{"History"},
		Languages: NameList{"English"},
	}
}

func TestNameList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want NameList
	}{
		{"array", `{"genres":["History"," Economics ",""]}`, NameList{"History", "Economics"}},
		{"comma string", `{"genres":"History, Economics,,"}`, NameList{"History", "Economics"}},
		{"empty array", `{"genres":[]}`, NameList{}},
		{"empty string", `{"genres":""}`, NameList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct {
				Genres NameList `json:"genres"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &v))
			assert.Equal(t, tt.want, v.Genres)
			assert.NotNil(t, v.Genres)
		})
	}
}

func TestNameList_AbsentAndNullStayNil(t *testing.T) {
	var v struct {
		Genres NameList `json:"genres"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{}`), &v))
	assert.Nil(t, v.Genres)

	require.NoError(t, json.Unmarshal([]byte(`{"genres":null}`), &v))
	assert.Nil(t, v.Genres)
}

func TestNameList_RejectsOtherTypes(t *testing.T) {
	var v struct {
		Genres NameList `json:"genres"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"genres":42}`), &v))
}

func TestPriceInput_AcceptsStringOrNumber(t *testing.T) {
	var v struct {
		A PriceInput `json:"a"`
		B PriceInput `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":" 24.99 ","b":10}`), &v))

	assert.Equal(t, PriceInput("24.99"), v.A)
	assert.Equal(t, PriceInput("10"), v.B)

	d, err := v.A.Decimal()
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("24.99")))
}

func TestCreateBookRequest_NormalizeMergesNewGenres(t *testing.T) {
	req := validCreate()
	req.Title = "  sapiens  "
	req.Subtitle = strPtr("   ")
	req.NewGenres = NameList{"Anthropology"}

	req.Normalize()

	assert.Equal(t, "sapiens", req.Title)
	assert.Nil(t, req.Subtitle)
	assert.Equal(t, NameList{"History", "Anthropology"}, req.Genres)
	assert.Nil(t, req.NewGenres)
}

func TestCreateBookRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateBookRequest)
		field   string
		wantErr bool
	}{
		{"valid", func(r *CreateBookRequest) {}, "", false},
		{"whole price", func(r *CreateBookRequest) { r.Price = "25" }, "", false},
		{"missing title", func(r *CreateBookRequest) { r.Title = "" }, "title", true},
		{"missing stock", func(r *CreateBookRequest) { r.Stock = nil }, "stock", true},
		{"negative stock", func(r *CreateBookRequest) { r.Stock = intPtr(-1) }, "stock", true},
		{"one decimal price", func(r *CreateBookRequest) { r.Price = "24.9" }, "price", true},
		{"no authors", func(r *CreateBookRequest) { r.Authors = NameList{} }, "authors", true},
		{"author with digits", func(r *CreateBookRequest) { r.Authors = NameList{"R2D2"} }, "authors", true},
		{"author with dots", func(r *CreateBookRequest) { r.Authors = NameList{"E. B. White"} }, "", false},
		{"genre too short", func(r *CreateBookRequest) { r.Genres = NameList{"X"} }, "genres", true},
		{"bad date", func(r *CreateBookRequest) { r.PublishedAt = strPtr("2011-13-01") }, "published_at", true},
		{"bad cover url", func(r *CreateBookRequest) { r.CoverURL = strPtr("not a url") }, "cover_url", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)

			err := req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var verrs validation.Errors
			require.True(t, errors.As(err, &verrs), "expected validation.Errors, got %v", err)
			assert.Contains(t, verrs, tt.field)
		})
	}
}

func TestCreateBookRequest_ToBook(t *testing.T) {
	req := validCreate()
	req.PublishedAt = strPtr("2011-02-10")

	b, assoc, err := req.ToBook()

	require.NoError(t, err)
	assert.Equal(t, "sapiens", b.Title)
	assert.Equal(t, 12, b.Stock)
	assert.Equal(t, "24.99", b.Price.StringFixed(2))
	require.NotNil(t, b.PublishedAt)
	assert.Equal(t, 2011, b.PublishedAt.Year())
	assert.Equal(t, []string{"Yuval Noah Harari"}, assoc.Authors)
	assert.Equal(t, []string{"English"}, assoc.Languages)
}

func TestUpdateBookRequest_PresentListMustBeNonEmpty(t *testing.T) {
	empty := UpdateBookRequest{Genres: NameList{}}
	var verrs validation.Errors
	require.True(t, errors.As(empty.Validate(), &verrs))
	assert.Contains(t, verrs, "genres")

	absent := UpdateBookRequest{Title: strPtr("Sapiens")}
	assert.NoError(t, absent.Validate())
}

func TestUpdateBookRequest_ToUpdate(t *testing.T) {
	price := PriceInput("30.00")
	req := UpdateBookRequest{
		Stock:  intPtr(0),
		Price:  &price,
		Genres: NameList{"History", "Economics"},
	}

	upd, assoc, err := req.ToUpdate()

	require.NoError(t, err)
	assert.Nil(t, upd.Title)
	require.NotNil(t, upd.Stock)
	assert.Equal(t, 0, *upd.Stock)
	require.NotNil(t, upd.Price)
	assert.Equal(t, "30.00", upd.Price.StringFixed(2))
	assert.Nil(t, assoc.Authors)
	assert.Nil(t, assoc.Languages)
	assert.Equal(t, []string{"History", "Economics"}, assoc.Genres)
	assert.True(t, assoc.HasAssociations())
	assert.False(t, upd.IsEmpty())
}

func TestBookUpdate_IsEmpty(t *testing.T) {
	assert.True(t, BookUpdate{}.IsEmpty())
	assert.False(t, BookUpdate{Title: strPtr("x")}.IsEmpty())
	assert.False(t, Associations{}.HasAssociations())
}

func TestToDetail_Defaults(t *testing.T) {
	b := Book{
		ID:      1,
		Title:   "sapiens",
		Stock:   1500,
		Price:   decimal.RequireFromString("1234.5"),
		Authors: []string{"Yuval Noah Harari", "Someone Else"},
	}

	d := ToDetail(b)

	assert.Equal(t, "Sapiens", d.Title)
	assert.Equal(t, "$1,234.50", d.Price)
	assert.Equal(t, "1.5K", d.Stock)
	assert.Equal(t, "Unknown", d.PublishedAt)
	assert.Equal(t, "Unknown", d.Genres)
	assert.Equal(t, "Unknown", d.Languages)
	assert.Equal(t, "Yuval Noah Harari, Someone Else", d.Authors)
}

func TestToEditForm_RawValues(t *testing.T) {
	published := time.Date(2011, 2, 10, 0, 0, 0, 0, time.UTC)
	b := Book{
		ID:          1,
		Title:       "Sapiens",
		Price:       decimal.RequireFromString("24.9"),
		PublishedAt: &published,
		Genres:      []string{"History", "Economics"},
		Languages:   []string{"English", "Hebrew"},
	}

	f := ToEditForm(b)

	assert.Equal(t, "24.90", f.Price)
	assert.Equal(t, "2011-02-10", f.PublishedAt)
	assert.Equal(t, []string{"history", "economics"}, f.Genres)
	assert.Equal(t, "English, Hebrew", f.Languages)
	assert.Equal(t, "", f.Subtitle)
}

func TestToListItem_NonNilLists(t *testing.T) {
	item := ToListItem(Book{ID: 2, Title: "dune", Price: decimal.NewFromInt(10)})

	assert.Equal(t, "Dune", item.Title)
	assert.Equal(t, "$10.00", item.Price)
	assert.NotNil(t, item.Genres)
	assert.NotNil(t, item.Authors)
}

func TestErrorMapping(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrBookNotFound)
	assert.Equal(t, 404, ToHTTPStatus(wrapped))
	assert.Equal(t, "BOOK_NOT_FOUND", ToErrorCode(wrapped))
	assert.Equal(t, "Internal server error", ToMessage(errors.New("pool closed")))
}
