// Package storage guarda os anexos das ordens de serviço num bucket S3
// compatível ou, sem bucket configurado, no disco local.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-desk/internal/config"
)

type Provider interface {
	UploadReader(ctx context.Context, r io.Reader, key, contentType string, size int64) (*Result, error)
	Delete(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	SignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
	PublicURL(key string) string
}

type Result struct {
	Key      string
	FileName string
	FileSize int64
	MimeType string
	URL      string
}

// New escolhe o provider pela configuração; falha ao verificar o bucket
// cai para o disco local.
func New(ctx context.Context, cfg *config.Config) Provider {
	if !cfg.S3Configured() {
		log.Printf("[storage] local filesystem (path: %s)", cfg.UploadDir)
		return NewLocalStorage(cfg.UploadDir)
	}

	s := NewS3Storage(cfg)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		log.Printf("[storage] bucket %s unreachable: %v; falling back to local filesystem", s.bucket, err)
		return NewLocalStorage(cfg.UploadDir)
	}

	log.Printf("[storage] s3 bucket %s", s.bucket)
	return s
}

// ====================================================
// S3
// ====================================================

type S3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

func NewS3Storage(cfg *config.Config) *S3Storage {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "",
		)),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	client := s3.New(opts)
	return &S3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.S3Bucket,
		publicURL: cfg.S3PublicURL,
	}
}

func (s *S3Storage) UploadReader(ctx context.Context, r io.Reader, key, contentType string, size int64) (*Result, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	url := s.PublicURL(key)
	if url == "" {
		if url, err = s.SignedURL(ctx, key, 7*24*time.Hour); err != nil {
			return nil, err
		}
	}

	return &Result{
		Key:      key,
		FileName: path.Base(key),
		FileSize: size,
		MimeType: contentType,
		URL:      url,
	}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("get %s: %w", key, err)
	}

	contentType := "application/octet-stream"
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}

func (s *S3Storage) SignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *S3Storage) PublicURL(key string) string {
	if s.publicURL == "" {
		return ""
	}
	return strings.TrimSuffix(s.publicURL, "/") + "/" + key
}

// ====================================================
// Local
// ====================================================

type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (l *LocalStorage) UploadReader(_ context.Context, r io.Reader, key, contentType string, _ int64) (*Result, error) {
	full := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}

	return &Result{
		Key:      key,
		FileName: path.Base(key),
		FileSize: written,
		MimeType: contentType,
		URL:      l.PublicURL(key),
	}, nil
}

func (l *LocalStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.baseDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (l *LocalStorage) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	f, err := os.Open(filepath.Join(l.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, "", fmt.Errorf("open file: %w", err)
	}
	return f, ContentType(key), nil
}

func (l *LocalStorage) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return l.PublicURL(key), nil
}

func (l *LocalStorage) PublicURL(key string) string {
	return "/" + path.Join(filepath.ToSlash(l.baseDir), key)
}

// ====================================================
// Keys
// ====================================================

// ContentType pela extensão; desconhecida vira octet-stream.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// ServiceOrderKey gera uma chave única para o anexo da OS.
func ServiceOrderKey(orderID uint, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("service-orders/%d/%s_%d%s", orderID, uuid.New().String(), time.Now().Unix(), ext)
}
