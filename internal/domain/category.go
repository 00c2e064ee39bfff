package domain

// Category represents a book category in the catalog. Category names are
// unique, the description is optional, and deleting a category deletes its
// books.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// NewCategory creates a new Category with the given name and optional
// description. Returns an error if validation fails.
func NewCategory(name string, description *string) (*Category, error) {
	category := &Category{Name: name, Description: description}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	return validateName(c.Name)
}
