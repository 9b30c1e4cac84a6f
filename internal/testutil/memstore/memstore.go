// Copyright (c) 2026 MADR contributors. All rights reserved.

/*
Package memstore is an in-memory implementation of the MADR repositories.

It enforces the same unique, foreign-key and cascade rules as the PostgreSQL
schema and reports violations through package dberr, so services behave the
same against either store. It is safe for concurrent use and is intended for
tests.
*/
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/eduardoklosowski/madr/internal/core/author"
	"github.com/eduardoklosowski/madr/internal/core/book"
	"github.com/eduardoklosowski/madr/internal/platform/dberr"
	"github.com/eduardoklosowski/madr/internal/users/account"
	"github.com/eduardoklosowski/madr/internal/users/auth"
	"github.com/eduardoklosowski/madr/pkg/pagination"
)

// Constraint names mirror the migrations.
const (
	constraintUserEmail    = "users_email_key"
	constraintUserUsername = "users_username_key"
	constraintAuthorName   = "romancistas_name_key"
	constraintBookTitle    = "livros_title_key"
	constraintBookAuthor   = "livros_romancista_id_fkey"
)

// Store holds users, authors and books.
type Store struct {
	mu      sync.RWMutex
	nextIDs map[string]int
	users   map[int]auth.User
	authors map[int]author.Author
	books   map[int]book.Book
	now     func() time.Time
}

var _ auth.UserRepository = (*Store)(nil)
var _ account.Repository = (*Store)(nil)
var _ author.Repository = (*Store)(nil)
var _ book.Repository = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextIDs: make(map[string]int),
		users:   make(map[int]auth.User),
		authors: make(map[int]author.Author),
		books:   make(map[int]book.Book),
		now:     time.Now,
	}
}

func (s *Store) nextIDLocked(table string) int {
	s.nextIDs[table]++
	return s.nextIDs[table]
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	return keys
}

// UserRepository implementation -----------------------------------------------

func (s *Store) FindByID(_ context.Context, id int) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, dberr.NotFound("find_user_by_id")
	}
	return &user, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedKeys(s.users) {
		if user := s.users[id]; user.Email == email {
			return &user, nil
		}
	}
	return nil, dberr.NotFound("find_user_by_email")
}

func (s *Store) FindByLogin(ctx context.Context, identifier string) (*auth.User, error) {
	if user, err := s.FindByEmail(ctx, identifier); err == nil {
		return user, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedKeys(s.users) {
		if user := s.users[id]; user.Username == identifier {
			return &user, nil
		}
	}
	return nil, dberr.NotFound("find_user_by_login")
}

func (s *Store) Create(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUserUniqueLocked("create_user", user); err != nil {
		return err
	}

	user.ID = s.nextIDLocked("users")
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *Store) Update(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return dberr.NotFound("update_user")
	}
	if err := s.checkUserUniqueLocked("update_user", user); err != nil {
		return err
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = s.now()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return dberr.NotFound("delete_user")
	}
	delete(s.users, id)
	return nil
}

func (s *Store) checkUserUniqueLocked(op string, user *auth.User) error {
	for id, other := range s.users {
		if id == user.ID {
			continue
		}
		if other.Email == user.Email {
			return dberr.Unique(op, constraintUserEmail)
		}
		if other.Username == user.Username {
			return dberr.Unique(op, constraintUserUsername)
		}
	}
	return nil
}

// author.Repository implementation --------------------------------------------

func (s *Store) ListAuthors(_ context.Context, filter author.Filter, page pagination.Params) ([]*author.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(filter.Name)
	var matches []*author.Author
	for _, id := range sortedKeys(s.authors) {
		a := s.authors[id]
		if strings.Contains(strings.ToLower(a.Name), needle) {
			matches = append(matches, &a)
		}
	}
	return pagination.Window(matches, page), nil
}

func (s *Store) GetAuthor(_ context.Context, id int) (*author.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.authors[id]
	if !ok {
		return nil, dberr.NotFound("get_author")
	}
	return &a, nil
}

func (s *Store) CreateAuthor(_ context.Context, a *author.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAuthorUniqueLocked("create_author", a); err != nil {
		return err
	}

	a.ID = s.nextIDLocked("romancistas")
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	s.authors[a.ID] = *a
	return nil
}

func (s *Store) UpdateAuthor(_ context.Context, a *author.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.authors[a.ID]
	if !ok {
		return dberr.NotFound("update_author")
	}
	if err := s.checkAuthorUniqueLocked("update_author", a); err != nil {
		return err
	}

	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = s.now()
	s.authors[a.ID] = *a
	return nil
}

// DeleteAuthor removes the author and, like ON DELETE CASCADE, its books.
func (s *Store) DeleteAuthor(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authors[id]; !ok {
		return dberr.NotFound("delete_author")
	}
	delete(s.authors, id)

	for bookID, b := range s.books {
		if b.RomancistaID == id {
			delete(s.books, bookID)
		}
	}
	return nil
}

func (s *Store) checkAuthorUniqueLocked(op string, a *author.Author) error {
	for id, other := range s.authors {
		if id != a.ID && other.Name == a.Name {
			return dberr.Unique(op, constraintAuthorName)
		}
	}
	return nil
}

// book.Repository implementation ----------------------------------------------

func (s *Store) ListBooks(_ context.Context, filter book.Filter, page pagination.Params) ([]*book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(filter.Title)
	var matches []*book.Book
	for _, id := range sortedKeys(s.books) {
		b := s.books[id]
		if !strings.Contains(strings.ToLower(b.Title), needle) {
			continue
		}
		if filter.Year != nil && b.Year != *filter.Year {
			continue
		}
		matches = append(matches, &b)
	}
	return pagination.Window(matches, page), nil
}

func (s *Store) GetBook(_ context.Context, id int) (*book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return nil, dberr.NotFound("get_book")
	}
	return &b, nil
}

func (s *Store) CreateBook(_ context.Context, b *book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkBookLocked("create_book", b); err != nil {
		return err
	}

	b.ID = s.nextIDLocked("livros")
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	s.books[b.ID] = *b
	return nil
}

func (s *Store) PatchBook(_ context.Context, id int, changes book.Changes) (*book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return nil, dberr.NotFound("patch_book")
	}

	if changes.Title != nil {
		b.Title = *changes.Title
	}
	if changes.Year != nil {
		b.Year = *changes.Year
	}
	if changes.RomancistaID != nil {
		b.RomancistaID = *changes.RomancistaID
	}

	if err := s.checkBookLocked("patch_book", &b); err != nil {
		return nil, err
	}

	b.UpdatedAt = s.now()
	s.books[id] = b
	return &b, nil
}

func (s *Store) DeleteBook(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return dberr.NotFound("delete_book")
	}
	delete(s.books, id)
	return nil
}

func (s *Store) AuthorExists(_ context.Context, authorID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.authors[authorID]
	return ok, nil
}

func (s *Store) checkBookLocked(op string, b *book.Book) error {
	for id, other := range s.books {
		if id != b.ID && other.Title == b.Title {
			return dberr.Unique(op, constraintBookTitle)
		}
	}
	if _, ok := s.authors[b.RomancistaID]; !ok {
		return dberr.ForeignKey(op, constraintBookAuthor)
	}
	return nil
}
