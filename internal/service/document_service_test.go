package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestDocumentService(t *testing.T) (*documentService, *stepClock) {
	t.Helper()
	clock := &stepClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewDocumentService(newTestStore(t).Documents()).(*documentService)
	svc.now = clock.now
	return svc, clock
}

func TestDocuments_ListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestDocumentService(t)

	for _, name := range []string{"t1", "t2", "t3"} {
		_, created, err := svc.Save(ctx, "alice", SaveDocumentInput{Name: name, Content: name})
		require.NoError(t, err)
		assert.True(t, created)
	}
	_, _, err := svc.Save(ctx, "bob", SaveDocumentInput{Name: "bob's"})
	require.NoError(t, err)

	docs, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "t3", docs[0].Name)
	assert.Equal(t, "t2", docs[1].Name)
	assert.Equal(t, "t1", docs[2].Name)
	for _, doc := range docs {
		assert.Equal(t, "alice", doc.UserID)
	}
}

func TestDocuments_SaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestDocumentService(t)

	doc, created, err := svc.Save(ctx, "alice", SaveDocumentInput{Name: "draft", Content: "v1"})
	require.NoError(t, err)
	require.True(t, created)
	_, _, err = svc.Save(ctx, "alice", SaveDocumentInput{Name: "other"})
	require.NoError(t, err)

	saved, created, err := svc.Save(ctx, "alice", SaveDocumentInput{ID: doc.ID, Name: "final", Content: "v2"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, doc.ID, saved.ID)
	assert.True(t, saved.UpdatedAt.After(doc.UpdatedAt))
	assert.True(t, saved.CreatedAt.Equal(doc.CreatedAt))

	loaded, err := svc.Load(ctx, "alice", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", loaded.Name)
	assert.Equal(t, "v2", loaded.Content)

	docs, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, docs[0].ID)
}

func TestDocuments_ForeignOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestDocumentService(t)

	doc, _, err := svc.Save(ctx, "alice", SaveDocumentInput{Name: "diary", Content: "secret"})
	require.NoError(t, err)

	_, err = svc.Load(ctx, "mallory", doc.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	_, _, err = svc.Save(ctx, "mallory", SaveDocumentInput{ID: doc.ID, Content: "defaced"})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "mallory", doc.ID), ErrDocumentNotFound)

	loaded, err := svc.Load(ctx, "alice", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", loaded.Content)

	require.NoError(t, svc.Delete(ctx, "alice", doc.ID))
	_, err = svc.Load(ctx, "alice", doc.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
