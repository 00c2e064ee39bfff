package domain

// Author represents a book author in the catalog. Author names are unique
// across the catalog, and deleting an author deletes its books.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewAuthor creates a new Author with the given name.
// The ID is assigned by the store on insert.
// Returns an error if validation fails.
func NewAuthor(name string) (*Author, error) {
	author := &Author{Name: name}
	if err := author.Validate(); err != nil {
		return nil, err
	}
	return author, nil
}

// Validate checks if the Author has valid data.
func (a *Author) Validate() error {
	return validateName(a.Name)
}
