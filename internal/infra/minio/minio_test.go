package minio

import (
	"errors"
	"strings"
	"testing"

	"vortex-go/internal/config"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestObjectName(t *testing.T) {
	a := objectName("avatars", "Me.PNG")
	b := objectName("avatars", "Me.PNG")

	if !strings.HasPrefix(a, "avatars/") || !strings.HasSuffix(a, ".png") {
		t.Errorf("objectName() = %q", a)
	}
	if a == b {
		t.Error("object names must be unique per upload")
	}
}

func TestPublicBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{"explicit", config.MinIOConfig{PublicBaseURL: "https://cdn.example.com/media/"}, "https://cdn.example.com/media"},
		{"derived", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "vortex-media"}, "http://localhost:9000/vortex-media"},
		{"derived ssl", config.MinIOConfig{Endpoint: "s3.local", Bucket: "b", UseSSL: true}, "https://s3.local/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := publicBaseURL(&tt.cfg); got != tt.want {
				t.Errorf("publicBaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	cb := newBreaker(&config.MinIOConfig{BreakerFailures: 2, BreakerOpenTimeout: 60})
	boom := errors.New("connection refused")

	calls := 0
	fail := func() (any, error) {
		calls++
		return nil, boom
	}

	for i := 0; i < 2; i++ {
		if _, err := cb.Execute(fail); !errors.Is(err, boom) {
			t.Fatalf("attempt %d error = %v", i, err)
		}
	}

	if _, err := cb.Execute(fail); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("error = %v, want ErrOpenState", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, open breaker must not call through", calls)
	}
}
