package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DefaultProbeTimeout ctx 未设截止时间时 ffprobe 的最长运行时间
const DefaultProbeTimeout = 30 * time.Second

// ProbeDuration 通过 ffprobe 读取视频时长（秒），超时后 ffprobe 进程被终止
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	timeout, err := probeTimeout(ctx)
	if err != nil {
		return 0, err
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, nil)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbeDuration(out)
}

// probeTimeout 取 ctx 剩余时间与默认超时中较短者
func probeTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return DefaultProbeTimeout, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, context.DeadlineExceeded
	}
	if remaining > DefaultProbeTimeout {
		return DefaultProbeTimeout, nil
	}
	return remaining, nil
}

func parseProbeDuration(out string) (float64, error) {
	var data struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Duration  string `json:"duration"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		return 0, fmt.Errorf("decode ffprobe output: %w", err)
	}

	if data.Format.Duration != "" {
		if dur, err := strconv.ParseFloat(data.Format.Duration, 64); err == nil {
			return dur, nil
		}
	}

	// 部分容器只在流上带时长
	for _, s := range data.Streams {
		if s.CodecType != "video" || s.Duration == "" {
			continue
		}
		if dur, err := strconv.ParseFloat(s.Duration, 64); err == nil {
			return dur, nil
		}
	}
	return 0, fmt.Errorf("ffprobe output has no duration")
}
