package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"
)

const maxImageSize = 10 * 1024 * 1024

// ImageStore uploads post images and turns stored paths into public URLs.
type ImageStore interface {
	// Upload stores file under key and returns the path to persist.
	// bearer is the caller's access token; implementations that do not
	// authenticate per user ignore it.
	Upload(ctx context.Context, key string, file *multipart.FileHeader, bearer string) (string, error)
	PublicURL(path string) string
}

// Images is the store used by the handlers; main wires the configured one.
var Images ImageStore

// ImageURL resolves a stored image path through the configured store.
func ImageURL(path string) string {
	if path == "" {
		return ""
	}
	if Images == nil || isAbsoluteURL(path) {
		return path
	}
	return Images.PublicURL(path)
}

func isAbsoluteURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

var validImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg"}

func IsValidImageType(filename string) bool {
	lowerFilename := strings.ToLower(filename)
	for _, ext := range validImageExtensions {
		if strings.HasSuffix(lowerFilename, ext) {
			return true
		}
	}
	return false
}

// ValidateImage checks extension and size before anything is uploaded.
func ValidateImage(file *multipart.FileHeader) error {
	if !IsValidImageType(file.Filename) {
		return fmt.Errorf("unsupported image format, use JPG, PNG, GIF, WEBP, BMP or SVG")
	}
	if file.Size > maxImageSize {
		return fmt.Errorf("image too large, maximum 10MB")
	}
	return nil
}

// ObjectKey names an upload after the current time and the original
// extension. Two uploads in the same millisecond collide.
func ObjectKey(now time.Time, filename string) string {
	return fmt.Sprintf("%d%s", now.UnixMilli(), strings.ToLower(filepath.Ext(filename)))
}

// SupabaseStore uploads to the platform's storage API through storage-go.
type SupabaseStore struct {
	BaseURL string
	AnonKey string
	Bucket  string
}

func NewSupabaseStore(baseURL, anonKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		AnonKey: anonKey,
		Bucket:  bucket,
	}
}

// client is built per call: the bearer differs per user and storage-go keeps
// request headers on the client.
func (s *SupabaseStore) client(bearer string) *storage_go.Client {
	if bearer == "" {
		bearer = s.AnonKey
	}
	return storage_go.NewClient(s.BaseURL+"/storage/v1", bearer, map[string]string{"apikey": s.AnonKey})
}

// Upload ignores ctx, storage-go requests are not context aware.
func (s *SupabaseStore) Upload(_ context.Context, key string, file *multipart.FileHeader, bearer string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	upsert := false

	resp, err := s.client(bearer).UploadFile(s.Bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if resp.Key == "" {
		return key, nil
	}
	// the API answers with "<bucket>/<key>", rows store the key alone
	return strings.TrimPrefix(resp.Key, s.Bucket+"/"), nil
}

// PublicURL follows {base}/storage/v1/object/public/{bucket}/{key}.
func (s *SupabaseStore) PublicURL(path string) string {
	if isAbsoluteURL(path) {
		return path
	}
	return s.client("").GetPublicUrl(s.Bucket, path).SignedURL
}
