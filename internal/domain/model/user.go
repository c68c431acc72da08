package model

import "time"

// User represents a registered shop customer.
type User struct {
	ID           int64
	Login        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
