// Package uploads stores registration documents (photos, aadhar scans,
// payment receipts) on the image host and removes them when a record is
// deleted.
package uploads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"golang.org/x/sync/errgroup"
)

// Uploader stores files and deletes them by their public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, name string, content io.Reader) (string, error)
	Destroy(ctx context.Context, fileURL string) error
}

// CloudinaryUploader is the production implementation.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image host client: %w", err)
	}
	return &CloudinaryUploader{client: client}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, folder, name string, content io.Reader) (string, error) {
	resp, err := u.client.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:   folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return resp.SecureURL, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, fileURL string) error {
	publicID := PublicIDFromURL(fileURL)
	if publicID == "" {
		return nil
	}
	_, err := u.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy failed for %s: %w", publicID, err)
	}
	return nil
}

// PublicIDFromURL recovers the asset's public id from a delivery URL: the
// path after the upload segment, minus the version prefix and the file
// extension. Returns "" for URLs not pointing at the image host.
func PublicIDFromURL(fileURL string) string {
	_, after, found := strings.Cut(fileURL, "/upload/")
	if !found {
		return ""
	}
	parts := strings.Split(after, "/")
	if len(parts) > 1 && strings.HasPrefix(parts[0], "v") && isDigits(parts[0][1:]) {
		parts = parts[1:]
	}
	id := strings.Join(parts, "/")
	if dot := strings.LastIndexByte(id, '.'); dot > 0 {
		id = id[:dot]
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// File is one named document in a multi-file upload.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// UploadAll stores every file concurrently and returns the URLs keyed by
// field name. Any single failure aborts the batch.
func UploadAll(ctx context.Context, up Uploader, folder string, files []File) (map[string]string, error) {
	urls := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := up.Upload(gctx, folder, f.Name, f.Content)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Field, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(files))
	for i, f := range files {
		result[f.Field] = urls[i]
	}
	return result, nil
}

// DestroyAll removes every URL, logging failures instead of stopping. Used
// when deleting a record; a leaked orphan image is preferable to a failed
// delete.
func DestroyAll(ctx context.Context, up Uploader, fileURLs ...string) {
	for _, u := range fileURLs {
		if u == "" {
			continue
		}
		if err := up.Destroy(ctx, u); err != nil {
			slog.Warn("failed to remove hosted file", "url", u, "error", err)
		}
	}
}
