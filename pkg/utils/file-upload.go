package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// DetectAndValidateFileType sniffs the real content type from the first 512
// bytes of an uploaded file and checks it against the allowed MIME types.
// The client-provided content type header is ignored on purpose.
func DetectAndValidateFileType(fileHeader *multipart.FileHeader, allowedTypes []string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("file is empty")
	}

	contentType := http.DetectContentType(buffer[:n])

	for _, t := range allowedTypes {
		if t == contentType {
			return contentType, nil
		}
	}
	return "", fmt.Errorf("invalid file type: %s", contentType)
}

// FileExtensionForContentType returns the extension (with leading dot) for
// the supported upload content types, or empty string if not recognized.
func FileExtensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	}
	return ""
}
