package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/service"
	"daybook/internal/storage"
)

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryStorage) PutObject(_ context.Context, bucket, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	return storage.Location(bucket, key), nil
}

func (m *memoryStorage) DeleteObject(_ context.Context, _, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) GetObjectURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://" + bucket + ".example.test/" + key + "?signed", nil
}

func (s *testServer) uploadFile(t *testing.T, path, token, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestUploadAvatar_StoresAndPresigns(t *testing.T) {
	objects := &memoryStorage{}
	srv := newTestServer(t, service.StorageOptions{Service: objects, Bucket: "pics", KeyPrefix: "avatars"})
	token, userID := srv.signup(t, "alice", "pw1")

	rec := srv.uploadFile(t, "/profile/alice/avatar", token, "me.png", []byte("first"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[profileResponse](t, rec)
	assert.True(t, strings.HasPrefix(first.ProfilePicture, "s3://pics/avatars/"+userID+"/"))
	assert.True(t, strings.HasSuffix(first.ProfilePicture, ".png"))

	rec = srv.uploadFile(t, "/profile/alice/avatar", token, "me.png", []byte("second"))
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[profileResponse](t, rec)
	assert.NotEqual(t, first.ProfilePicture, second.ProfilePicture)
	assert.Len(t, objects.objects, 1)

	rec = srv.do(t, http.MethodGet, "/profile/alice", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[profileViewResponse](t, rec)
	assert.Contains(t, view.ProfilePictureURL, "https://pics.example.test/avatars/")

	rec = srv.uploadFile(t, "/profile/ghost/avatar", token, "me.png", []byte("x"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadAvatar_RequiresFile(t *testing.T) {
	srv := newTestServer(t, service.StorageOptions{Service: &memoryStorage{}, Bucket: "pics"})
	token, _ := srv.signup(t, "alice", "pw1")

	rec := srv.do(t, http.MethodPost, "/profile/alice/avatar", token, map[string]string{"file": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
