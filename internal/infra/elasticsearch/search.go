package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// buildSearchBody 标题权重高于描述，只匹配已发布视频
func buildSearchBody(text string, ownerID *int64, size int) ([]byte, error) {
	filters := []map[string]interface{}{
		{"term": map[string]interface{}{"is_published": true}},
	}
	if ownerID != nil {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"owner_id": *ownerID},
		})
	}

	body := map[string]interface{}{
		"size":    size,
		"_source": false,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     text,
						"fields":    []string{"title^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": filters,
			},
		},
	}
	return json.Marshal(body)
}

// SearchVideoIDs 全文检索，返回候选视频 ID（按相关度）。排序与分页由数据库完成。
func (c *Client) SearchVideoIDs(ctx context.Context, text string, ownerID *int64) ([]int64, error) {
	body, err := buildSearchBody(text, ownerID, c.maxCandidates)
	if err != nil {
		return nil, err
	}

	resp, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("search failed: %s", resp.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
