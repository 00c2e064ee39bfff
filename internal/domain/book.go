package domain

// Book represents a catalog entry. A book belongs to exactly one author,
// category and publisher, referenced by id. Book names are unique.
//
// Book holds foreign-key values only; it never owns its parent objects.
// Joined parent data is carried separately by BookDetail.
type Book struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	AuthorID    int64   `json:"author_id"`
	CategoryID  int64   `json:"category_id"`
	PublisherID int64   `json:"publisher_id"`
}

// BookDetail is a Book enriched with the names of its parent rows, produced
// by query-time joins for read endpoints.
type BookDetail struct {
	Book
	AuthorName    string `json:"-"`
	CategoryName  string `json:"-"`
	PublisherName string `json:"-"`
}

// NewBook creates a new Book with the given fields.
// Returns an error if validation fails.
func NewBook(name string, description *string, authorID, categoryID, publisherID int64) (*Book, error) {
	book := &Book{
		Name:        name,
		Description: description,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		PublisherID: publisherID,
	}
	if err := book.Validate(); err != nil {
		return nil, err
	}
	return book, nil
}

// Validate checks if the Book has valid data. Referenced rows are checked
// against the store at creation time, not here.
func (b *Book) Validate() error {
	if err := validateName(b.Name); err != nil {
		return err
	}
	if b.AuthorID <= 0 {
		return ErrMissingAuthorID
	}
	if b.CategoryID <= 0 {
		return ErrMissingCategoryID
	}
	if b.PublisherID <= 0 {
		return ErrMissingPublisherID
	}
	return nil
}
