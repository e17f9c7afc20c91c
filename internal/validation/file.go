package validation

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/templui/goalnote/internal/apperror"
)

// FileConstraints defines validation rules for file uploads.
// A nil allow list accepts any value.
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// AttachmentConstraints builds the upload rules from the configured allow
// list. Entries starting with a dot are extensions, anything else is a MIME
// type where "image/*" admits a whole family. An empty list accepts any
// file up to maxSize bytes.
func AttachmentConstraints(maxSize int64, allowed []string) FileConstraints {
	c := FileConstraints{MaxSize: maxSize}

	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == "":
		case strings.HasPrefix(entry, "."):
			if c.AllowedExtensions == nil {
				c.AllowedExtensions = make(map[string]bool)
			}
			c.AllowedExtensions[entry] = true
		default:
			if c.AllowedMimeTypes == nil {
				c.AllowedMimeTypes = make(map[string]bool)
			}
			c.AllowedMimeTypes[entry] = true
		}
	}

	return c
}

// ValidateFile checks an upload against the constraints and returns its
// MIME type.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) (string, error) {
	if header.Filename == "" {
		return "", apperror.BadRequest("File name is missing")
	}

	// Check file size first (before reading content)
	if constraints.MaxSize > 0 && header.Size > constraints.MaxSize {
		return "", apperror.BadRequest(fmt.Sprintf("File too large: maximum size is %s", formatSize(constraints.MaxSize)))
	}

	mimeType, err := contentType(header)
	if err != nil {
		return "", err
	}

	if constraints.AllowedMimeTypes != nil && !constraints.allowsMimeType(mimeType) {
		return "", apperror.BadRequest(fmt.Sprintf("Invalid file type: %s", mimeType))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if constraints.AllowedExtensions != nil && !constraints.AllowedExtensions[ext] {
		return "", apperror.BadRequest(fmt.Sprintf("Invalid file extension: %s", ext))
	}

	return mimeType, nil
}

func (c FileConstraints) allowsMimeType(mimeType string) bool {
	if c.AllowedMimeTypes[mimeType] {
		return true
	}
	family, _, ok := strings.Cut(mimeType, "/")
	return ok && c.AllowedMimeTypes[family+"/*"]
}

// contentType prefers the type the client declared and falls back to
// sniffing the first 512 bytes. Parameters such as charset are dropped.
func contentType(header *multipart.FileHeader) (string, error) {
	declared := header.Header.Get("Content-Type")
	if declared != "" && declared != "application/octet-stream" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err == nil {
			return mediaType, nil
		}
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(buffer[:n]))
	if err != nil {
		return "application/octet-stream", nil
	}
	return mediaType, nil
}

func formatSize(size int64) string {
	if size >= 1<<20 && size%(1<<20) == 0 {
		return fmt.Sprintf("%d MB", size/(1<<20))
	}
	return fmt.Sprintf("%d bytes", size)
}
