// File: internal/store/user.go
package store

import (
	"context"
	"fmt"

	"authors-probe/internal/model"
)

type userRow struct {
	id           int64
	passwordHash string
}

func (m *Memory) CreateUser(_ context.Context, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.Username]; ok {
		return nil, fmt.Errorf("CreateUser %q: %w", u.Username, ErrDuplicate)
	}
	m.nextUserID++
	m.users[u.Username] = userRow{id: m.nextUserID, passwordHash: u.PasswordHash}

	created := *u
	created.ID = m.nextUserID
	return &created, nil
}

func (m *Memory) GetUserByName(_ context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.users[username]
	if !ok {
		return nil, fmt.Errorf("GetUserByName %q: %w", username, ErrNotFound)
	}
	return &model.User{ID: row.id, Username: username, PasswordHash: row.passwordHash}, nil
}
