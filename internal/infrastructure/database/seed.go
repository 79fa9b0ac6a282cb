package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	authorModel "book-inventory/internal/domains/author/model"
	bookModel "book-inventory/internal/domains/book/model"
	pkgdb "book-inventory/pkg/database"
)

// AuthorCreator is satisfied by the author repository
type AuthorCreator interface {
	Create(ctx context.Context, a *authorModel.Author) (int64, error)
}

// BookCreator is satisfied by the book repository; genres and languages
// are created by its reconciliation step
type BookCreator interface {
	CreateBook(ctx context.Context, b *bookModel.Book, assoc bookModel.Associations) (int64, error)
}

type seedAuthor struct {
	name string
	bio  string
	dob  string
}

type seedBook struct {
	title     string
	subtitle  string
	stock     int
	price     string
	published string
	authors   []string
	genres    []string
	languages []string
}

var seedAuthors = []seedAuthor{
	{"Yuval Noah Harari", "Israeli historian and professor at Hebrew University. Known for exploring big-picture questions about history and humanity.", "1976-02-24"},
	{"E. B. White", "American writer known for children's books and essays. Also co-authored The Elements of Style.", "1899-07-11"},
	{"Daron Acemoglu", "Turkish-American economist and MIT professor, known for research in political economy and development.", "1967-09-03"},
	{"James A. Robinson", "British political scientist and economist, co-author of multiple works on institutions and development.", ""},
	{"Peter Hessler", "American journalist and author known for writing about China.", "1969-06-14"},
}

var seedBooks = []seedBook{
	{
		title: "Sapiens", subtitle: "A Brief History of Humankind", stock: 10, price: "19.99", published: "2014-09-04",
		authors: []string{"Yuval Noah Harari"}, genres: []string{"History"}, languages: []string{"English"},
	},
	{
		title: "Charlotte's Web", stock: 5, price: "9.99", published: "1952-10-15",
		authors: []string{"E. B. White"}, genres: []string{"Children", "Fantasy"}, languages: []string{"English"},
	},
	{
		title: "Why Nations Fail", subtitle: "The Origins of Power, Prosperity, and Poverty", stock: 8, price: "25.00", published: "2012-03-13",
		authors: []string{"Daron Acemoglu", "James A. Robinson"}, genres: []string{"Politics", "Economics"}, languages: []string{"English"},
	},
	{
		title: "Oracle Bones", subtitle: "A Journey Between China's Past and Present", stock: 7, price: "18.00", published: "2006-08-15",
		authors: []string{"Peter Hessler"}, genres: []string{"History", "Memoir"}, languages: []string{"English", "Chinese"},
	},
}

// Seeder inserts the demo catalogue through the regular repositories
type Seeder struct {
	db      pkgdb.Querier
	authors AuthorCreator
	books   BookCreator
}

func NewSeeder(db pkgdb.Querier, authors AuthorCreator, books BookCreator) *Seeder {
	return &Seeder{db: db, authors: authors, books: books}
}

// Run seeds an empty catalogue and does nothing when books already exist
func (s *Seeder) Run(ctx context.Context) error {
	var seeded bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books)`).Scan(&seeded); err != nil {
		return fmt.Errorf("check existing books: %w", err)
	}
	if seeded {
		log.Info().Msg("[SEED] Catalogue not empty, skipping")
		return nil
	}

	for _, a := range seedAuthors {
		author := &authorModel.Author{Name: a.name, Bio: &a.bio}
		if a.dob != "" {
			dob, err := time.Parse(time.DateOnly, a.dob)
			if err != nil {
				return fmt.Errorf("seed author %q: %w", a.name, err)
			}
			author.DOB = &dob
		}
		if _, err := s.authors.Create(ctx, author); err != nil {
			return fmt.Errorf("seed author %q: %w", a.name, err)
		}
	}

	for _, b := range seedBooks {
		book, err := b.toBook()
		if err != nil {
			return fmt.Errorf("seed book %q: %w", b.title, err)
		}
		id, err := s.books.CreateBook(ctx, book, bookModel.Associations{
			Authors:   b.authors,
			Genres:    b.genres,
			Languages: b.languages,
		})
		if err != nil {
			return fmt.Errorf("seed book %q: %w", b.title, err)
		}
		log.Info().Int64("book_id", id).Str("title", b.title).Msg("[SEED] Book created")
	}

	log.Info().Int("authors", len(seedAuthors)).Int("books", len(seedBooks)).Msg("[SEED] Done")
	return nil
}

func (b seedBook) toBook() (*bookModel.Book, error) {
	price, err := decimal.NewFromString(b.price)
	if err != nil {
		return nil, err
	}
	published, err := time.Parse(time.DateOnly, b.published)
	if err != nil {
		return nil, err
	}

	book := &bookModel.Book{
		Title:       b.title,
		Stock:       b.stock,
		Price:       price,
		PublishedAt: &published,
	}
	if b.subtitle != "" {
		subtitle := b.subtitle
		book.Subtitle = &subtitle
	}
	return book, nil
}
