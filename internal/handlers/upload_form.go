package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ddka-tech/ddka-backend/internal/uploads"
)

// formDocument opens one uploaded form file as an upload job. The caller is
// responsible for invoking the returned closer.
func formDocument(c *fiber.Ctx, field string) (*uploads.File, io.Closer, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("missing file %q", field)
	}
	return openDocument(header, field)
}

func openDocument(header *multipart.FileHeader, field string) (*uploads.File, io.Closer, error) {
	f, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file %q: %w", field, err)
	}
	return &uploads.File{
		Field:   field,
		Name:    uploadName(field, header.Filename),
		Content: f,
	}, f, nil
}

// uploadName builds a collision-free object name from the field and a random
// suffix; the original filename only contributes its extension.
func uploadName(field, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return field + "-" + uuid.NewString() + ext
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
