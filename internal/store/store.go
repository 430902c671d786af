// File: internal/store/store.go
package store

import (
	"errors"
	"sync"

	"authors-probe/internal/model"
)

// AuthorsPerPage 每頁作者筆數
const AuthorsPerPage = 10

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Memory 以記憶體保存使用者與作者資料，重啟後即清空
type Memory struct {
	mu           sync.RWMutex
	users        map[string]userRow
	authors      map[int64]model.Author
	nextUserID   int64
	nextAuthorID int64
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]userRow),
		authors: make(map[int64]model.Author),
	}
}
