package media

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"vortex-go/internal/config"
)

func testPolicy(t *testing.T) *Policy {
	return NewPolicy(config.UploadConfig{
		TempDir:            t.TempDir(),
		MaxImageSize:       1024,
		MaxVideoSize:       4096,
		ImageExtensions:    []string{".png", ".jpg"},
		VideoExtensions:    []string{".mp4"},
		ImageContentPrefix: "image/",
		VideoContentPrefix: "video/",
	})
}

func TestPolicyCheck(t *testing.T) {
	p := testPolicy(t)

	tests := []struct {
		name    string
		kind    Kind
		file    string
		size    int64
		wantErr bool
	}{
		{"image ok", KindImage, "a.PNG", 10, false},
		{"empty", KindImage, "a.png", 0, true},
		{"too large", KindImage, "a.png", 2048, true},
		{"bad extension", KindImage, "a.exe", 10, true},
		{"video ok", KindVideo, "clip.mp4", 4096, false},
		{"image ext for video", KindVideo, "clip.png", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Check("file", tt.kind, tt.file, tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			var rejected *RejectError
			if err != nil && !errors.As(err, &rejected) {
				t.Errorf("error %T is not a RejectError", err)
			}
		})
	}
}

// 最小的合法 PNG 文件头
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestSaveTempSniffsContent(t *testing.T) {
	p := testPolicy(t)

	f, err := p.saveTemp("avatar", KindImage, "me.png", strings.NewReader(string(pngHeader)))
	if err != nil {
		t.Fatalf("saveTemp(png) error = %v", err)
	}
	if f.ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", f.ContentType)
	}
	f.Remove()
	if _, err := os.Stat(f.Path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after Remove()")
	}

	_, err = p.saveTemp("avatar", KindImage, "fake.png", strings.NewReader("plain text pretending to be an image"))
	var rejected *RejectError
	if !errors.As(err, &rejected) {
		t.Fatalf("saveTemp(text) error = %v, want RejectError", err)
	}
}

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    float64
		wantErr bool
	}{
		{"format duration", `{"format":{"duration":"12.500000"}}`, 12.5, false},
		{"stream duration", `{"streams":[{"codec_type":"audio","duration":"3"},{"codec_type":"video","duration":"9.25"}],"format":{}}`, 9.25, false},
		{"missing", `{"format":{}}`, 0, true},
		{"garbage", `not json`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeDuration(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseProbeDuration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("duration = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProbeTimeout(t *testing.T) {
	got, err := probeTimeout(context.Background())
	if err != nil || got != DefaultProbeTimeout {
		t.Errorf("no deadline: timeout = %v, err = %v", got, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err = probeTimeout(ctx)
	if err != nil || got <= 0 || got > 5*time.Second {
		t.Errorf("short deadline: timeout = %v, err = %v", got, err)
	}

	long, cancelLong := context.WithTimeout(context.Background(), time.Hour)
	defer cancelLong()
	if got, _ := probeTimeout(long); got != DefaultProbeTimeout {
		t.Errorf("long deadline: timeout = %v, want %v", got, DefaultProbeTimeout)
	}

	done, cancelDone := context.WithCancel(context.Background())
	cancelDone()
	if _, err := probeTimeout(done); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled: err = %v", err)
	}
	if _, err := ProbeDuration(done, "missing.mp4"); !errors.Is(err, context.Canceled) {
		t.Errorf("ProbeDuration on canceled ctx: err = %v", err)
	}
}
