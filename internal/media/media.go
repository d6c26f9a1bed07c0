// Package media 处理上传文件：校验、落临时文件、探测时长，以及与外部媒体存储交互的接口。
package media

import (
	"context"
	"os"

	"vortex-go/internal/model"
	"vortex-go/pkg/logger"

	"go.uber.org/zap"
)

// Kind 上传文件类别
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// File 已落盘的临时上传文件
type File struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
	Kind        Kind
}

// Remove 删除临时文件，失败只记录日志
func (f *File) Remove() {
	if f == nil || f.Path == "" {
		return
	}
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove temp file", zap.String("path", f.Path), zap.Error(err))
	}
}

// Store 外部媒体存储
type Store interface {
	// Upload 上传文件到 folder 下，返回资源引用
	Upload(ctx context.Context, folder string, f *File) (model.Asset, error)
	// Delete 按公开 ID 删除资源，不存在视为成功
	Delete(ctx context.Context, publicID string) error
}

// Prober 读取视频时长（秒）
type Prober func(ctx context.Context, path string) (float64, error)

// Folder 资源在媒体存储中的目录
const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
)

// DeleteQuietly 尽力删除旧资源，失败只记录日志
func DeleteQuietly(ctx context.Context, store Store, asset model.Asset) {
	if asset.IsZero() {
		return
	}
	if err := store.Delete(ctx, asset.PublicID); err != nil {
		logger.Warn("Failed to delete asset",
			zap.String("public_id", asset.PublicID),
			zap.Error(err),
		)
	}
}
