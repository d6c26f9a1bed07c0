package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vortex-go/internal/model"
	"vortex-go/pkg/logger"

	"go.uber.org/zap"
)

// VideoDoc ES 视频文档结构
type VideoDoc struct {
	ID            int64   `json:"id"`
	OwnerID       int64   `json:"owner_id"`
	OwnerUserName string  `json:"owner_user_name"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	IsPublished   bool    `json:"is_published"`
	Views         int64   `json:"views"`
	Duration      float64 `json:"duration"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// NewVideoDoc 视频转为索引文档
func NewVideoDoc(v *model.Video, ownerUserName string) *VideoDoc {
	return &VideoDoc{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		OwnerUserName: ownerUserName,
		Title:         v.Title,
		Description:   v.Description,
		IsPublished:   v.IsPublished,
		Views:         v.Views,
		Duration:      v.Duration,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     v.UpdatedAt.Format(time.RFC3339),
	}
}

// SyncVideo 同步单个视频到 ES
func (c *Client) SyncVideo(ctx context.Context, v *model.Video, ownerUserName string) error {
	body, err := json.Marshal(NewVideoDoc(v, ownerUserName))
	if err != nil {
		return err
	}

	resp, err := c.es.Index(
		c.index,
		bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(strconv.FormatInt(v.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", v.ID))
	return nil
}

// DeleteVideo 从 ES 删除视频，文档不存在视为成功
func (c *Client) DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := c.es.Delete(c.index, strconv.FormatInt(videoID, 10), c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSyncVideos 批量同步视频到 ES
func (c *Client) BulkSyncVideos(ctx context.Context, videos []model.Video, ownerNames map[int64]string) (success, failed int, err error) {
	var buf strings.Builder
	for i := range videos {
		v := &videos[i]
		docBody, err := json.Marshal(NewVideoDoc(v, ownerNames[v.OwnerID]))
		if err != nil {
			failed++
			continue
		}

		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, c.index, v.ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	if buf.Len() == 0 {
		return 0, failed, nil
	}

	resp, err := c.es.Bulk(strings.NewReader(buf.String()), c.es.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(videos), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
