package upload

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when a temp file doesn't exist.
var ErrNotFound = errors.New("upload: file not found")

// ErrExpired is returned when a temp file has outlived the store's TTL.
var ErrExpired = errors.New("upload: file expired")

// ErrTooLarge is returned when a file exceeds the size limit.
var ErrTooLarge = errors.New("upload: file too large")

// Store is the interface for upload staging backends.
// Implement this interface to use GCS or other storage.
type Store interface {
	// Save stores the uploaded file and returns a temp ID.
	// The file is stored temporarily until Claim is called.
	Save(filename string, contentType string, size int64, r io.Reader) (tempID string, err error)

	// Claim retrieves and removes a temp file, returning a file handle.
	// After claiming, the temp file is deleted (or marked for deletion).
	Claim(tempID string) (*File, error)

	// Cleanup removes expired temp files.
	// Call this periodically (e.g., every 5 minutes).
	Cleanup(maxAge time.Duration) error
}

// File represents an uploaded file.
type File struct {
	// ID is the unique identifier for this upload.
	ID string

	// Filename is the original filename from the client.
	Filename string

	// ContentType is the MIME type detected from the file contents.
	ContentType string

	// Size is the file size in bytes.
	Size int64

	// Path is the local filesystem path (for DiskStore).
	Path string

	// URL is the remote URL (for S3/CDN storage).
	URL string

	// Reader provides access to the file contents.
	// May be nil if the file is stored on disk (use Path instead).
	Reader io.ReadCloser
}

// Close closes the file reader if open.
func (f *File) Close() error {
	if f.Reader != nil {
		return f.Reader.Close()
	}
	return nil
}

// Handler returns an http.Handler for file uploads.
// Mount this on your router: r.Post("/upload", upload.Handler(store))
//
// The handler expects a multipart form with a "file" field.
// It returns JSON with the temp_id:
//
//	{"temp_id": "abc123"}
func Handler(store Store) http.Handler {
	return HandlerWithConfig(store, DefaultConfig())
}

// HandlerWithConfig returns an upload handler with custom configuration.
func HandlerWithConfig(store Store, config *Config) http.Handler {
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024 // 10MB default
	}

	// Normalize the allow lists once. Types are compared case-insensitively
	// and without parameters; extensions keep their leading dot.
	allowedTypes := make([]string, 0, len(config.AllowedTypes))
	for _, t := range config.AllowedTypes {
		allowedTypes = append(allowedTypes, normalizeMediaType(t))
	}
	allowedExts := make([]string, 0, len(config.AllowedExtensions))
	for _, ext := range config.AllowedExtensions {
		allowedExts = append(allowedExts, strings.ToLower(ext))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// SECURITY: Limit request body size BEFORE parsing to prevent DoS
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)

		// Parse multipart form (32MB max in memory, but body already limited)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "No file provided", http.StatusBadRequest)
			return
		}
		defer file.Close()

		// The part's Content-Type header is client-controlled; detect the
		// type from the file bytes instead.
		detected, err := detectMediaType(file)
		if err != nil {
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}

		if len(allowedTypes) > 0 && !contains(allowedTypes, detected) {
			http.Error(w, "Unsupported file type", http.StatusUnsupportedMediaType)
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if len(allowedExts) > 0 && !contains(allowedExts, ext) {
			http.Error(w, "Unsupported file type", http.StatusUnsupportedMediaType)
			return
		}
		if config.RequireExtensionMatch && !extensionMatches(ext, detected) {
			http.Error(w, "Unsupported file type", http.StatusUnsupportedMediaType)
			return
		}

		// Store the file. The store receives the detected content type,
		// not the client's.
		tempID, err := store.Save(
			header.Filename,
			detected,
			header.Size,
			file,
		)
		if err != nil {
			if errors.Is(err, ErrTooLarge) {
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}

		// Return temp ID as JSON
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"temp_id": tempID,
		})
	})
}

// Claim retrieves a temp file by ID.
// Call this after a successful submit for each file field whose value is
// a temp id.
//
// Example:
//
//	file, err := upload.Claim(store, tempID)
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//	// Use file.Path or file.Reader
func Claim(store Store, tempID string) (*File, error) {
	return store.Claim(tempID)
}

// Config holds configuration for the upload handler.
type Config struct {
	// MaxFileSize is the maximum allowed size of the request body in
	// bytes, multipart overhead included. Default: 10MB.
	MaxFileSize int64

	// AllowedTypes is a list of allowed MIME types, matched against the
	// type detected from the file contents. Entries are normalized, so
	// "IMAGE/PNG" and "image/png; charset=binary" both mean "image/png".
	// If empty, all types are allowed.
	AllowedTypes []string

	// AllowedExtensions is a list of allowed filename extensions
	// including the leading dot (".png"). Matching is case-insensitive.
	// If empty, all extensions are allowed.
	AllowedExtensions []string

	// RequireExtensionMatch rejects files whose extension maps to a MIME
	// type different from the one detected from the contents. Files with
	// unknown extensions are rejected too, since the match can't be
	// verified.
	RequireExtensionMatch bool

	// TempExpiry is how long temp files live before cleanup.
	// Default: 1 hour.
	TempExpiry time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: 10 * 1024 * 1024, // 10MB
		TempExpiry:  time.Hour,
	}
}

// detectMediaType sniffs the media type from the file's first 512 bytes
// and rewinds the file for the subsequent Save.
func detectMediaType(f multipart.File) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return normalizeMediaType(http.DetectContentType(head[:n])), nil
}

// normalizeMediaType lowercases a MIME type and strips parameters like
// "; charset=utf-8".
func normalizeMediaType(s string) string {
	mediaType, _, err := mime.ParseMediaType(s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return mediaType
}

// extensionMatches reports whether ext's registered MIME type equals the
// detected media type. Unknown extensions never match.
func extensionMatches(ext, mediaType string) bool {
	if ext == "" {
		return false
	}
	registered := mime.TypeByExtension(ext)
	if registered == "" {
		return false
	}
	return normalizeMediaType(registered) == mediaType
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
