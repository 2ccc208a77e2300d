package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cleanlog-backend/pkg/utils"
)

// UploadService stores post and topic images on disk. Files live in a
// directory named after the owning topic, mirroring how the published
// site references them.
type UploadService struct {
	uploadDir    string
	maxSize      int64
	allowedTypes []string
}

var ErrInvalidUpload = errors.New("invalid upload")

func NewUploadService(uploadDir string, maxSize int64) *UploadService {
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0o755)
	}

	return &UploadService{
		uploadDir:    uploadDir,
		maxSize:      maxSize,
		allowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
	}
}

// SaveImage writes the uploaded file under the topic's directory and
// returns the stored filename.
func (s *UploadService) SaveImage(file *multipart.FileHeader, topicName string) (string, error) {
	if file == nil {
		return "", ErrInvalidUpload
	}

	if file.Size > s.maxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.isAllowedType(ext) {
		return "", fmt.Errorf("%w: file type %q not allowed", ErrInvalidUpload, ext)
	}

	dir, err := s.topicDir(topicName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := s.generateFilename(dir, file.Filename, ext)
	dstPath := filepath.Join(dir, filename)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", err
	}

	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", err
	}

	return filename, nil
}

func (s *UploadService) DeleteImage(topicName, filename string) error {
	dir, err := s.topicDir(topicName)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	return nil
}

// topicDir resolves the per-topic directory and rejects anything that
// would escape the upload root.
func (s *UploadService) topicDir(topicName string) (string, error) {
	slug := utils.GenerateSlug(topicName)
	if slug == "" {
		return "", fmt.Errorf("%w: unusable topic name %q", ErrInvalidUpload, topicName)
	}

	rootAbs, err := filepath.Abs(s.uploadDir)
	if err != nil {
		return "", err
	}

	dirAbs, err := filepath.Abs(filepath.Join(s.uploadDir, slug))
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(dirAbs, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path escapes upload root", ErrInvalidUpload)
	}

	return dirAbs, nil
}

func (s *UploadService) isAllowedType(ext string) bool {
	for _, allowed := range s.allowedTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *UploadService) generateFilename(dir, originalName, ext string) string {
	base := utils.GenerateSlug(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName)))
	if base == "" {
		base = uuid.New().String()
	}

	candidate := base + ext
	if !fileExists(filepath.Join(dir, candidate)) {
		return candidate
	}

	for i := 1; i < 1000; i++ {
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		if !fileExists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}

	return uuid.New().String() + ext
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
