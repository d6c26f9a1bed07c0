// Package query 描述读模型查询：过滤、连接、派生字段、排序与分页，并编译为 gorm 查询。
package query

import "strings"

// Where 收集参数化的 WHERE 条件，各条件以 AND 连接
type Where struct {
	clauses []string
	args    []interface{}
}

// NewWhere 创建空条件
func NewWhere() *Where {
	return &Where{}
}

// Add 追加一个条件片段及其参数
func (w *Where) Add(clause string, args ...interface{}) *Where {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
	return w
}

// AddIf cond 为真时追加条件
func (w *Where) AddIf(cond bool, clause string, args ...interface{}) *Where {
	if cond {
		w.Add(clause, args...)
	}
	return w
}

// IsEmpty 是否没有任何条件
func (w *Where) IsEmpty() bool {
	return len(w.clauses) == 0
}

// Build 生成条件语句，无条件时返回 "1=1"
func (w *Where) Build() (string, []interface{}) {
	if len(w.clauses) == 0 {
		return "1=1", nil
	}
	if len(w.clauses) == 1 {
		return w.clauses[0], w.args
	}
	parts := make([]string, len(w.clauses))
	for i, c := range w.clauses {
		parts[i] = "(" + c + ")"
	}
	return strings.Join(parts, " AND "), w.args
}

// Contains 生成大小写无关的 LIKE 模式，转义通配符，配合 LikeClause 使用
func Contains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

// LikeClause column 的大小写无关包含匹配
func LikeClause(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}
