package domain

// Publisher represents a book publisher in the catalog. Publisher names are
// unique, the description is optional, and deleting a publisher deletes its
// books.
type Publisher struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// NewPublisher creates a new Publisher with the given name and optional
// description. Returns an error if validation fails.
func NewPublisher(name string, description *string) (*Publisher, error) {
	publisher := &Publisher{Name: name, Description: description}
	if err := publisher.Validate(); err != nil {
		return nil, err
	}
	return publisher, nil
}

// Validate checks if the Publisher has valid data.
func (p *Publisher) Validate() error {
	return validateName(p.Name)
}
