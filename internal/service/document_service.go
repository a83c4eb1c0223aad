package service

import (
	"context"
	"errors"
	"time"

	"daybook/internal/domain"
	"daybook/internal/repository"
)

// SaveDocumentInput creates a document when ID is empty and overwrites the
// caller's document with that id otherwise.
type SaveDocumentInput struct {
	ID      string
	Name    string
	Content string
}

// DocumentService manages the text documents of the authenticated user.
type DocumentService interface {
	List(ctx context.Context, userID string) ([]domain.Document, error)
	Save(ctx context.Context, userID string, in SaveDocumentInput) (doc *domain.Document, created bool, err error)
	Load(ctx context.Context, userID, docID string) (*domain.Document, error)
	Delete(ctx context.Context, userID, docID string) error
}

type documentService struct {
	docs repository.DocumentRepository
	now  func() time.Time
}

func NewDocumentService(docs repository.DocumentRepository) DocumentService {
	return &documentService{
		docs: docs,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) List(ctx context.Context, userID string) ([]domain.Document, error) {
	return s.docs.ListByUser(ctx, userID)
}

func (s *documentService) Save(ctx context.Context, userID string, in SaveDocumentInput) (*domain.Document, bool, error) {
	now := s.now()

	if in.ID == "" {
		doc := &domain.Document{
			UserID:    userID,
			Name:      in.Name,
			Content:   in.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.docs.Create(ctx, doc); err != nil {
			return nil, false, err
		}
		return doc, true, nil
	}

	doc, err := s.docs.GetForUser(ctx, in.ID, userID)
	if err != nil {
		return nil, false, documentLookupError(err)
	}
	doc.Name = in.Name
	doc.Content = in.Content
	doc.UpdatedAt = now
	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, false, documentLookupError(err)
	}
	return doc, false, nil
}

func (s *documentService) Load(ctx context.Context, userID, docID string) (*domain.Document, error) {
	doc, err := s.docs.GetForUser(ctx, docID, userID)
	if err != nil {
		return nil, documentLookupError(err)
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, userID, docID string) error {
	if err := s.docs.DeleteForUser(ctx, docID, userID); err != nil {
		return documentLookupError(err)
	}
	return nil
}

func documentLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDocumentNotFound
	}
	return err
}
