package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"vortex-go/internal/config"

	"github.com/gabriel-vasile/mimetype"
)

// RejectError 上传文件不满足限制
type RejectError struct {
	Field  string
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Policy 上传限制：大小、扩展名白名单，以及按文件内容嗅探的类型
type Policy struct {
	cfg config.UploadConfig
}

// NewPolicy 创建上传策略
func NewPolicy(cfg config.UploadConfig) *Policy {
	return &Policy{cfg: cfg}
}

func (p *Policy) limits(kind Kind) (int64, []string, string) {
	if kind == KindVideo {
		return p.cfg.MaxVideoSize, p.cfg.VideoExtensions, p.cfg.VideoContentPrefix
	}
	return p.cfg.MaxImageSize, p.cfg.ImageExtensions, p.cfg.ImageContentPrefix
}

// Check 校验文件名与大小
func (p *Policy) Check(field string, kind Kind, name string, size int64) error {
	maxSize, exts, _ := p.limits(kind)
	if size <= 0 {
		return &RejectError{Field: field, Reason: "file is empty"}
	}
	if maxSize > 0 && size > maxSize {
		return &RejectError{Field: field, Reason: fmt.Sprintf("file exceeds %d bytes", maxSize)}
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range exts {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return &RejectError{Field: field, Reason: fmt.Sprintf("extension %q is not allowed", ext)}
}

// Save 校验并保存上传文件到临时目录，内容类型由文件头嗅探得到
func (p *Policy) Save(field string, kind Kind, fh *multipart.FileHeader) (*File, error) {
	if err := p.Check(field, kind, fh.Filename, fh.Size); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	f, err := p.saveTemp(field, kind, fh.Filename, src)
	if err != nil {
		return nil, err
	}
	f.Size = fh.Size
	return f, nil
}

func (p *Policy) saveTemp(field string, kind Kind, name string, src io.Reader) (*File, error) {
	dir := p.cfg.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "upload-*"+strings.ToLower(filepath.Ext(name)))
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	f := &File{Path: tmp.Name(), Name: name, Kind: kind}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		f.Remove()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		f.Remove()
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	mt, err := mimetype.DetectFile(f.Path)
	if err != nil {
		f.Remove()
		return nil, fmt.Errorf("detect content type: %w", err)
	}

	_, _, prefix := p.limits(kind)
	if prefix != "" && !strings.HasPrefix(mt.String(), prefix) {
		f.Remove()
		return nil, &RejectError{Field: field, Reason: fmt.Sprintf("content type %q is not allowed", mt.String())}
	}

	f.ContentType = mt.String()
	return f, nil
}
