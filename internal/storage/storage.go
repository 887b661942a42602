package storage

import (
	"fmt"
	"mime/multipart"

	"social-network-backend/config"
)

// Storage 文件存储接口，上传成功后返回可访问的 URL
type Storage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}

// NewStorage 根据配置选择存储后端：GCS、S3 或本地磁盘
func NewStorage() (Storage, error) {
	cfg := config.AppConfig
	switch {
	case cfg.GCSBucketName != "":
		return NewGCSStorage(cfg.GCSBucketName, cfg.GCSCredsFile)
	case cfg.S3Bucket != "":
		return NewS3Storage(cfg.S3Region, cfg.S3Bucket)
	case cfg.LocalStoragePath != "":
		return NewLocalStorage(cfg.LocalStoragePath, cfg.BackendURL)
	default:
		return nil, fmt.Errorf("未配置任何存储后端")
	}
}
