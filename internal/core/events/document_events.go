package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDocumentCreated      = "document.created"
	EventTypeDocumentVersionAdded = "document.version_added"
	EventTypeUserRegistered       = "user.registered"
)

type DocumentCreatedEvent struct {
	BaseEvent
	DocumentID int64  `json:"document_id"`
	OwnerID    int64  `json:"owner_id"`
	Title      string `json:"title"`
}

func NewDocumentCreatedEvent(documentID, ownerID int64, title string) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDocumentCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"document_id": documentID,
				"owner_id":    ownerID,
				"title":       title,
			},
		},
		DocumentID: documentID,
		OwnerID:    ownerID,
		Title:      title,
	}
}

type DocumentVersionAddedEvent struct {
	BaseEvent
	DocumentID    int64  `json:"document_id"`
	VersionNumber int64  `json:"version_number"`
	PathURL       string `json:"path_url"`
}

func NewDocumentVersionAddedEvent(documentID, versionNumber int64, pathURL string) *DocumentVersionAddedEvent {
	return &DocumentVersionAddedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDocumentVersionAdded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"document_id":    documentID,
				"version_number": versionNumber,
				"path_url":       pathURL,
			},
		},
		DocumentID:    documentID,
		VersionNumber: versionNumber,
		PathURL:       pathURL,
	}
}

type UserRegisteredEvent struct {
	BaseEvent
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

func NewUserRegisteredEvent(userID int64, email string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"email":   email,
			},
		},
		UserID: userID,
		Email:  email,
	}
}
