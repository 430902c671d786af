// File: internal/model/user.go
package model

// User is an account that may log in to the stand-in API.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
