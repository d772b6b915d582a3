package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/ddka/players/photo-abc.jpg", "ddka/players/photo-abc"},
		{"https://res.cloudinary.com/demo/image/upload/ddka/players/photo-abc.png", "ddka/players/photo-abc"},
		{"https://res.cloudinary.com/demo/image/upload/v99/sample.jpg", "sample"},
		{"https://res.cloudinary.com/demo/image/upload/video/clip", "video/clip"},
		{"https://example.com/not-hosted/photo.jpg", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicIDFromURL(tt.url), "url %q", tt.url)
	}
}

type fakeUploader struct {
	mu        sync.Mutex
	uploaded  map[string]string
	destroyed []string
	failField string
}

func (f *fakeUploader) Upload(_ context.Context, folder, name string, content io.Reader) (string, error) {
	if strings.Contains(name, f.failField) && f.failField != "" {
		return "", errors.New("host rejected file")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploaded == nil {
		f.uploaded = make(map[string]string)
	}
	url := "https://img.example/" + folder + "/" + name
	f.uploaded[name] = url
	return url, nil
}

func (f *fakeUploader) Destroy(_ context.Context, fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, fileURL)
	return nil
}

func TestUploadAll(t *testing.T) {
	up := &fakeUploader{}
	files := []File{
		{Field: "photo", Name: "photo-1", Content: strings.NewReader("a")},
		{Field: "aadharFront", Name: "front-1", Content: strings.NewReader("b")},
		{Field: "aadharBack", Name: "back-1", Content: strings.NewReader("c")},
	}

	urls, err := UploadAll(context.Background(), up, "ddka/players", files)
	require.NoError(t, err)
	require.Len(t, urls, 3)
	assert.Equal(t, "https://img.example/ddka/players/photo-1", urls["photo"])
	assert.Equal(t, "https://img.example/ddka/players/back-1", urls["aadharBack"])
}

func TestUploadAllAbortsOnFailure(t *testing.T) {
	up := &fakeUploader{failField: "front"}
	files := []File{
		{Field: "photo", Name: "photo-1", Content: strings.NewReader("a")},
		{Field: "aadharFront", Name: "front-1", Content: strings.NewReader("b")},
	}

	_, err := UploadAll(context.Background(), up, "ddka/players", files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aadharFront")
}

func TestDestroyAllSkipsEmptyURLs(t *testing.T) {
	up := &fakeUploader{}
	DestroyAll(context.Background(), up, "https://img.example/a", "", "https://img.example/b")
	assert.Equal(t, []string{"https://img.example/a", "https://img.example/b"}, up.destroyed)
}
