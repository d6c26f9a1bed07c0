package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vortex-go/internal/config"
	"vortex-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// Client 视频搜索索引客户端
type Client struct {
	es            *elasticsearch.Client
	index         string
	maxCandidates int
}

// NewClient 初始化 Elasticsearch 客户端并探活
func NewClient(cfg *config.ElasticsearchConfig) (*Client, error) {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.TrimSpace(h)
		if h != "" && !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		if h != "" {
			hosts = append(hosts, h)
		}
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    hosts,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	index := cfg.VideoIndex
	if index == "" {
		index = "videos"
	}
	maxCandidates := cfg.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 1000
	}

	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts), zap.String("index", index))
	return &Client{es: es, index: index, maxCandidates: maxCandidates}, nil
}

// Index 视频索引名
func (c *Client) Index() string {
	return c.index
}
