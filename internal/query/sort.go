package query

import (
	"errors"
	"strings"
)

var ErrInvalidSort = errors.New("invalid sort parameter")

// Sort 排序项
type Sort struct {
	Column string
	Desc   bool
}

func (s Sort) String() string {
	if s.Desc {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}

// 可排序字段，对外名称 -> 列名
var videoSortColumns = map[string]string{
	"views":     "views",
	"createdAt": "created_at",
	"duration":  "duration",
}

// ParseVideoSort 解析视频排序参数，未指定时按更新时间倒序
func ParseVideoSort(table, sortBy, sortType string) (Sort, error) {
	desc := true
	switch strings.ToLower(sortType) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return Sort{}, ErrInvalidSort
	}

	if sortBy == "" {
		return Sort{Column: table + ".updated_at", Desc: desc}, nil
	}
	col, ok := videoSortColumns[sortBy]
	if !ok {
		return Sort{}, ErrInvalidSort
	}
	return Sort{Column: table + "." + col, Desc: desc}, nil
}
