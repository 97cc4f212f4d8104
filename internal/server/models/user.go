// Package models defines server-side data models persisted in the database.
package models

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Prefs        map[string]any
	CreatedAt    time.Time
}
