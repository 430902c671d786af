// File: internal/model/author.go
package model

import "time"

type Author struct {
	ID        int64
	Name      string
	Surname   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
