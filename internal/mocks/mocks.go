// Package mocks provides in-memory doubles of the store and auth service
// interfaces for handler tests.
package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/service/auth"
	"github.com/mdelucas/libris-api/internal/store"
)

// MockTransactor satisfies store.Transactor without a database. The
// callback receives a nil transaction; the in-memory stores ignore it.
type MockTransactor struct{}

// RunInTransaction implements store.Transactor.
func (t *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

// MemoryAuthorStore is an in-memory store.AuthorStore.
type MemoryAuthorStore struct {
	mu      sync.Mutex
	nextID  int64
	authors map[int64]domain.Author
}

// NewMemoryAuthorStore creates an empty MemoryAuthorStore.
func NewMemoryAuthorStore() *MemoryAuthorStore {
	return &MemoryAuthorStore{nextID: 1, authors: map[int64]domain.Author{}}
}

var _ store.AuthorStore = (*MemoryAuthorStore)(nil)

// WithTx implements store.AuthorStore.WithTx
func (s *MemoryAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore { return s }

// Create implements store.AuthorStore.Create
func (s *MemoryAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.authors {
		if existing.Name == author.Name {
			return store.ErrAuthorExists
		}
	}
	author.ID = s.nextID
	s.nextID++
	s.authors[author.ID] = *author
	return nil
}

// GetByID implements store.AuthorStore.GetByID
func (s *MemoryAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	author, ok := s.authors[id]
	if !ok {
		return nil, store.ErrAuthorNotFound
	}
	return &author, nil
}

// List implements store.AuthorStore.List
func (s *MemoryAuthorStore) List(ctx context.Context, nameFilter string) ([]domain.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	authors := []domain.Author{}
	for _, id := range sortedKeys(s.authors) {
		author := s.authors[id]
		if matchesName(author.Name, nameFilter) {
			authors = append(authors, author)
		}
	}
	return authors, nil
}

// Update implements store.AuthorStore.Update
func (s *MemoryAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authors[author.ID]; !ok {
		return store.ErrAuthorNotFound
	}
	for id, existing := range s.authors {
		if id != author.ID && existing.Name == author.Name {
			return store.ErrAuthorExists
		}
	}
	s.authors[author.ID] = *author
	return nil
}

// Delete implements store.AuthorStore.Delete
func (s *MemoryAuthorStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authors[id]; !ok {
		return store.ErrAuthorNotFound
	}
	delete(s.authors, id)
	return nil
}

// MemoryCategoryStore is an in-memory store.CategoryStore.
type MemoryCategoryStore struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]domain.Category
}

// NewMemoryCategoryStore creates an empty MemoryCategoryStore.
func NewMemoryCategoryStore() *MemoryCategoryStore {
	return &MemoryCategoryStore{nextID: 1, categories: map[int64]domain.Category{}}
}

var _ store.CategoryStore = (*MemoryCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *MemoryCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore { return s }

// Create implements store.CategoryStore.Create
func (s *MemoryCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return store.ErrCategoryExists
		}
	}
	category.ID = s.nextID
	s.nextID++
	s.categories[category.ID] = *category
	return nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *MemoryCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return &category, nil
}

// List implements store.CategoryStore.List
func (s *MemoryCategoryStore) List(ctx context.Context, nameFilter string) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories := []domain.Category{}
	for _, id := range sortedKeys(s.categories) {
		category := s.categories[id]
		if matchesName(category.Name, nameFilter) {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

// Update implements store.CategoryStore.Update
func (s *MemoryCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	for id, existing := range s.categories {
		if id != category.ID && existing.Name == category.Name {
			return store.ErrCategoryExists
		}
	}
	s.categories[category.ID] = *category
	return nil
}

// Delete implements store.CategoryStore.Delete
func (s *MemoryCategoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

// MemoryPublisherStore is an in-memory store.PublisherStore.
type MemoryPublisherStore struct {
	mu         sync.Mutex
	nextID     int64
	publishers map[int64]domain.Publisher
}

// NewMemoryPublisherStore creates an empty MemoryPublisherStore.
func NewMemoryPublisherStore() *MemoryPublisherStore {
	return &MemoryPublisherStore{nextID: 1, publishers: map[int64]domain.Publisher{}}
}

var _ store.PublisherStore = (*MemoryPublisherStore)(nil)

// WithTx implements store.PublisherStore.WithTx
func (s *MemoryPublisherStore) WithTx(tx *sql.Tx) store.PublisherStore { return s }

// Create implements store.PublisherStore.Create
func (s *MemoryPublisherStore) Create(ctx context.Context, publisher *domain.Publisher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.publishers {
		if existing.Name == publisher.Name {
			return store.ErrPublisherExists
		}
	}
	publisher.ID = s.nextID
	s.nextID++
	s.publishers[publisher.ID] = *publisher
	return nil
}

// GetByID implements store.PublisherStore.GetByID
func (s *MemoryPublisherStore) GetByID(ctx context.Context, id int64) (*domain.Publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	publisher, ok := s.publishers[id]
	if !ok {
		return nil, store.ErrPublisherNotFound
	}
	return &publisher, nil
}

// List implements store.PublisherStore.List
func (s *MemoryPublisherStore) List(ctx context.Context, nameFilter string) ([]domain.Publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	publishers := []domain.Publisher{}
	for _, id := range sortedKeys(s.publishers) {
		publisher := s.publishers[id]
		if matchesName(publisher.Name, nameFilter) {
			publishers = append(publishers, publisher)
		}
	}
	return publishers, nil
}

// Update implements store.PublisherStore.Update
func (s *MemoryPublisherStore) Update(ctx context.Context, publisher *domain.Publisher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.publishers[publisher.ID]; !ok {
		return store.ErrPublisherNotFound
	}
	for id, existing := range s.publishers {
		if id != publisher.ID && existing.Name == publisher.Name {
			return store.ErrPublisherExists
		}
	}
	s.publishers[publisher.ID] = *publisher
	return nil
}

// Delete implements store.PublisherStore.Delete
func (s *MemoryPublisherStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.publishers[id]; !ok {
		return store.ErrPublisherNotFound
	}
	delete(s.publishers, id)
	return nil
}

// MemoryBookStore is an in-memory store.BookStore. When the parent stores
// are provided, it resolves parent names for details and enforces the
// foreign-key rules; cascade deletion of books is the caller's concern in
// tests, mirroring the database's cascade rule.
type MemoryBookStore struct {
	mu     sync.Mutex
	nextID int64
	books  map[int64]domain.Book

	authors    *MemoryAuthorStore
	categories *MemoryCategoryStore
	publishers *MemoryPublisherStore
}

// NewMemoryBookStore creates an empty MemoryBookStore. The parent stores
// may be nil for tests that don't touch references.
func NewMemoryBookStore(
	authors *MemoryAuthorStore,
	categories *MemoryCategoryStore,
	publishers *MemoryPublisherStore,
) *MemoryBookStore {
	return &MemoryBookStore{
		nextID:     1,
		books:      map[int64]domain.Book{},
		authors:    authors,
		categories: categories,
		publishers: publishers,
	}
}

var _ store.BookStore = (*MemoryBookStore)(nil)

// WithTx implements store.BookStore.WithTx
func (s *MemoryBookStore) WithTx(tx *sql.Tx) store.BookStore { return s }

func (s *MemoryBookStore) detail(ctx context.Context, book domain.Book) domain.BookDetail {
	detail := domain.BookDetail{Book: book}
	if s.authors != nil {
		if author, err := s.authors.GetByID(ctx, book.AuthorID); err == nil {
			detail.AuthorName = author.Name
		}
	}
	if s.categories != nil {
		if category, err := s.categories.GetByID(ctx, book.CategoryID); err == nil {
			detail.CategoryName = category.Name
		}
	}
	if s.publishers != nil {
		if publisher, err := s.publishers.GetByID(ctx, book.PublisherID); err == nil {
			detail.PublisherName = publisher.Name
		}
	}
	return detail
}

func (s *MemoryBookStore) checkRefs(ctx context.Context, book *domain.Book) error {
	if s.authors != nil {
		if _, err := s.authors.GetByID(ctx, book.AuthorID); err != nil {
			return store.ErrInvalidEntity
		}
	}
	if s.categories != nil {
		if _, err := s.categories.GetByID(ctx, book.CategoryID); err != nil {
			return store.ErrInvalidEntity
		}
	}
	if s.publishers != nil {
		if _, err := s.publishers.GetByID(ctx, book.PublisherID); err != nil {
			return store.ErrInvalidEntity
		}
	}
	return nil
}

// Create implements store.BookStore.Create
func (s *MemoryBookStore) Create(ctx context.Context, book *domain.Book) error {
	if err := s.checkRefs(ctx, book); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.books {
		if existing.Name == book.Name {
			return store.ErrBookExists
		}
	}
	book.ID = s.nextID
	s.nextID++
	s.books[book.ID] = *book
	return nil
}

// GetByID implements store.BookStore.GetByID
func (s *MemoryBookStore) GetByID(ctx context.Context, id int64) (*domain.BookDetail, error) {
	s.mu.Lock()
	book, ok := s.books[id]
	s.mu.Unlock()
	if !ok {
		return nil, store.ErrBookNotFound
	}
	detail := s.detail(ctx, book)
	return &detail, nil
}

// List implements store.BookStore.List
func (s *MemoryBookStore) List(ctx context.Context, filter store.BookFilter) ([]domain.BookDetail, error) {
	s.mu.Lock()
	matched := []domain.Book{}
	for _, id := range sortedKeys(s.books) {
		book := s.books[id]
		if !matchesName(book.Name, filter.Name) {
			continue
		}
		if filter.AuthorID != nil && book.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.CategoryID != nil && book.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.PublisherID != nil && book.PublisherID != *filter.PublisherID {
			continue
		}
		matched = append(matched, book)
	}
	s.mu.Unlock()

	details := []domain.BookDetail{}
	for _, book := range matched {
		details = append(details, s.detail(ctx, book))
	}
	return details, nil
}

// ExistsByName implements store.BookStore.ExistsByName
func (s *MemoryBookStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.books {
		if existing.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Update implements store.BookStore.Update
func (s *MemoryBookStore) Update(ctx context.Context, book *domain.Book) error {
	if err := s.checkRefs(ctx, book); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[book.ID]; !ok {
		return store.ErrBookNotFound
	}
	for id, existing := range s.books {
		if id != book.ID && existing.Name == book.Name {
			return store.ErrBookExists
		}
	}
	s.books[book.ID] = *book
	return nil
}

// Delete implements store.BookStore.Delete
func (s *MemoryBookStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return store.ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

// DeleteByAuthor mirrors the schema's cascade rule for tests.
func (s *MemoryBookStore) DeleteByAuthor(authorID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, book := range s.books {
		if book.AuthorID == authorID {
			delete(s.books, id)
		}
	}
}

// MemoryUserStore is an in-memory store.UserStore.
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

// NewMemoryUserStore creates an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: map[int64]domain.User{}}
}

var _ store.UserStore = (*MemoryUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *MemoryUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

// Create implements store.UserStore.Create
func (s *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MemoryUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// SetActive flips a stored user's active flag, for middleware tests.
func (s *MemoryUserStore) SetActive(id int64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		user.IsActive = active
		s.users[id] = user
	}
}

// MockTokenService is a canned auth.TokenService.
type MockTokenService struct {
	Token       string
	Claims      *auth.Claims
	GenerateErr error
	ValidateErr error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// Generate implements auth.TokenService.Generate
func (m *MockTokenService) Generate(ctx context.Context, email string) (string, error) {
	return m.Token, m.GenerateErr
}

// Validate implements auth.TokenService.Validate
func (m *MockTokenService) Validate(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	return m.Claims, nil
}

// MockPasswordHasher implements auth.PasswordHasher and
// auth.PasswordVerifier with a transparent, non-cryptographic scheme.
type MockPasswordHasher struct {
	HashErr error
}

var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

// Hash implements auth.PasswordHasher.Hash
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier.Compare
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return bcrypt.ErrMismatchedHashAndPassword
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func matchesName(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}
