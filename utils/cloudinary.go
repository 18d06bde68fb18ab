package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore is the alternative image backend. Paths it returns are
// absolute secure URLs, so PublicURL passes them through.
type CloudinaryStore struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	folder    string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are not set")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := cld.Admin.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping cloudinary: %w", err)
	}

	LogSuccess("Cloudinary initialized")
	return &CloudinaryStore{cld: cld, cloudName: cloudName, folder: folder}, nil
}

func boolPointer(b bool) *bool {
	return &b
}

func (s *CloudinaryStore) Upload(ctx context.Context, key string, file *multipart.FileHeader, _ string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	publicID := strings.TrimSuffix(key, filepath.Ext(key))
	uploadResult, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       publicID,
		UniqueFilename: boolPointer(false),
		Overwrite:      boolPointer(false),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload to cloudinary: %w", err)
	}

	if uploadResult.SecureURL != "" {
		return uploadResult.SecureURL, nil
	}
	if uploadResult.PublicID != "" {
		return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cloudName, uploadResult.PublicID), nil
	}
	return "", fmt.Errorf("cloudinary returned no URL for %s", key)
}

func (s *CloudinaryStore) PublicURL(path string) string {
	return path
}
