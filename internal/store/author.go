// File: internal/store/author.go
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"authors-probe/internal/model"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// ListAuthors returns one page of authors ordered by id. page < 1 is treated
// as 1. A non-empty search keeps authors whose name or surname equals it,
// ignoring case.
func (m *Memory) ListAuthors(_ context.Context, page int, search string) []model.Author {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if page < 1 {
		page = 1
	}

	matched := make([]model.Author, 0, len(m.authors))
	for _, a := range m.authors {
		if search != "" && !strings.EqualFold(a.Name, search) && !strings.EqualFold(a.Surname, search) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	offset := (page - 1) * AuthorsPerPage
	if offset >= len(matched) {
		return []model.Author{}
	}
	end := offset + AuthorsPerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end]
}

func (m *Memory) GetAuthor(_ context.Context, id int64) (*model.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.authors[id]
	if !ok {
		return nil, fmt.Errorf("GetAuthor %d: %w", id, ErrNotFound)
	}
	return &a, nil
}

func (m *Memory) CreateAuthor(_ context.Context, a *model.Author) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := timeNow()
	m.nextAuthorID++
	created := model.Author{
		ID:        m.nextAuthorID,
		Name:      a.Name,
		Surname:   a.Surname,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.authors[created.ID] = created
	return &created, nil
}

func (m *Memory) UpdateAuthor(_ context.Context, a *model.Author) (*model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated, ok := m.authors[a.ID]
	if !ok {
		return nil, fmt.Errorf("UpdateAuthor %d: %w", a.ID, ErrNotFound)
	}
	updated.Name = a.Name
	updated.Surname = a.Surname
	updated.UpdatedAt = timeNow()
	m.authors[a.ID] = updated
	return &updated, nil
}

func (m *Memory) DeleteAuthor(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.authors[id]; !ok {
		return fmt.Errorf("DeleteAuthor %d: %w", id, ErrNotFound)
	}
	delete(m.authors, id)
	return nil
}
