package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		bucket   string
		want     string
		wantErr  bool
	}{
		{name: "key", location: "s3://media/avatars/u1/a.png", bucket: "media", want: "avatars/u1/a.png"},
		{name: "any bucket", location: "s3://other/a.png", want: "a.png"},
		{name: "bucket mismatch", location: "s3://other/a.png", bucket: "media", wantErr: true},
		{name: "no key", location: "s3://media", bucket: "media", wantErr: true},
		{name: "empty key", location: "s3://media/", bucket: "media", wantErr: true},
		{name: "plain url", location: "https://example.com/a.png", wantErr: true},
		{name: "no bucket", location: "s3:///a.png", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.location, tt.bucket)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocationRoundTrip(t *testing.T) {
	loc := Location("media", "/avatars/u1/a.png")
	assert.Equal(t, "s3://media/avatars/u1/a.png", loc)
	assert.True(t, IsLocation(loc))

	key, err := ParseLocation(loc, "media")
	require.NoError(t, err)
	assert.Equal(t, "avatars/u1/a.png", key)
}

func TestS3Service_GetObjectURL(t *testing.T) {
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		BaseEndpoint: aws.String("http://localhost:9000"),
		UsePathStyle: true,
	})
	svc := NewS3Service(client)

	url, err := svc.GetObjectURL(context.Background(), "media", "avatars/u1/a.png", 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/media/avatars/u1/a.png?"), url)
	assert.Contains(t, url, "X-Amz-Expires=900")

	_, err = svc.GetObjectURL(context.Background(), "", "a.png", time.Minute)
	assert.Error(t, err)
}
