package rpc

import (
	"time"

	"github.com/dmitrijs2005/stackquery/internal/docstore"
)

type CreateUserRequest struct {
	ID       string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the wire form of a gateway session. Secret is only sent back
// by CreateEmailPasswordSession.
type Session struct {
	ID        string    `json:"$id"`
	UserID    string    `json:"userId"`
	Secret    string    `json:"secret,omitempty"`
	CreatedAt time.Time `json:"$createdAt"`
	ExpiresAt time.Time `json:"expire"`
}

type User struct {
	ID        string         `json:"$id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Prefs     map[string]any `json:"prefs"`
	CreatedAt time.Time      `json:"$createdAt"`
}

type UpdatePrefsRequest struct {
	Prefs map[string]any `json:"prefs"`
}

type JWT struct {
	JWT string `json:"jwt"`
}

type CreateDocumentRequest struct {
	Collection string         `json:"collectionId"`
	ID         string         `json:"documentId"`
	Data       map[string]any `json:"data"`
}

type GetDocumentRequest struct {
	Collection string           `json:"collectionId"`
	ID         string           `json:"documentId"`
	Queries    []docstore.Query `json:"queries,omitempty"`
}

type ListDocumentsRequest struct {
	Collection string           `json:"collectionId"`
	Queries    []docstore.Query `json:"queries,omitempty"`
}

// Attachment is a pending upload: PUT the file body to URL, then reference
// ID from the question.
type Attachment struct {
	ID  string `json:"$id"`
	URL string `json:"url"`
}
