package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"silabo_backend/internal/config"
	"silabo_backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 定义通用存储接口
// bucket 取值为配置里的 BucketSilabos 或 BucketDocumentos
type StorageProvider interface {
	Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error)
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, bucket, key string) error
	// Promote 把暂存对象移动到最终键。数据库写入成功之后才调用
	Promote(ctx context.Context, bucket, stagingKey, finalKey string) error
	GetURL(bucket, key string) string
}

// LocalStorageProvider 本地存储实现，测试里也用它
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) path(bucket, key string) string {
	return filepath.Join(p.Config.LocalPath, bucket, key)
}

func (p *LocalStorageProvider) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := p.path(bucket, key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err = io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.GetURL(bucket, key), nil
}

func (p *LocalStorageProvider) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return os.Open(p.path(bucket, key))
}

func (p *LocalStorageProvider) Delete(ctx context.Context, bucket, key string) error {
	return os.Remove(p.path(bucket, key))
}

func (p *LocalStorageProvider) Promote(ctx context.Context, bucket, stagingKey, finalKey string) error {
	dst := p.path(bucket, finalKey)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.Rename(p.path(bucket, stagingKey), dst)
}

func (p *LocalStorageProvider) GetURL(bucket, key string) string {
	return "/uploads/" + bucket + "/" + key
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(bucket, key), nil
}

func (p *MinioStorageProvider) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return p.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
}

func (p *MinioStorageProvider) Delete(ctx context.Context, bucket, key string) error {
	return p.Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) Promote(ctx context.Context, bucket, stagingKey, finalKey string) error {
	src := minio.CopySrcOptions{Bucket: bucket, Object: stagingKey}
	dst := minio.CopyDestOptions{Bucket: bucket, Object: finalKey}
	if _, err := p.Client.CopyObject(ctx, dst, src); err != nil {
		return err
	}
	return p.Client.RemoveObject(ctx, bucket, stagingKey, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(bucket, key string) string {
	return "/" + bucket + "/" + key
}

// StorageService 存储服务
type StorageService struct {
	Provider StorageProvider
	Silabos  string
	Docs     string
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	if cfg.Storage.Type == "minio" {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("MinIO init failed, falling back to local storage",
				zap.String("endpoint", cfg.Storage.MinioEndpoint), zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{
		Provider: provider,
		Silabos:  cfg.Storage.BucketSilabos,
		Docs:     cfg.Storage.BucketDocumentos,
	}
}

func (s *StorageService) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, bucket, key, reader, size, contentType)
}

func (s *StorageService) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return s.Provider.Download(ctx, bucket, key)
}

// ReadAll 拉取整个对象到内存，供文本提取用
func (s *StorageService) ReadAll(ctx context.Context, bucket, key string) ([]byte, error) {
	rc, err := s.Provider.Download(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *StorageService) Delete(ctx context.Context, bucket, key string) error {
	return s.Provider.Delete(ctx, bucket, key)
}

func (s *StorageService) Promote(ctx context.Context, bucket, stagingKey, finalKey string) error {
	return s.Provider.Promote(ctx, bucket, stagingKey, finalKey)
}
