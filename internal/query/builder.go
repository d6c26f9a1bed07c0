package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// field 投影列或派生字段
type field struct {
	expr  string
	alias string
	args  []interface{}
}

func (f field) sql() string {
	if f.alias == "" {
		return f.expr
	}
	return f.expr + " AS " + f.alias
}

type join struct {
	clause string
	args   []interface{}
}

// Query 一次读模型查询的描述。派生计数与归属标记都以关联子查询在读取时计算，
// 生成的 SQL 同时兼容 PostgreSQL 与 SQLite。
type Query struct {
	table    string
	fields   []field
	joins    []join
	where    *Where
	sorts    []Sort
	tiebreak *Sort
	page     *Page
}

// From 以 table 为根实体开始一个查询，默认按主键升序兜底排序
func From(table string) *Query {
	return &Query{
		table:    table,
		where:    NewWhere(),
		tiebreak: &Sort{Column: table + ".id"},
	}
}

// Table 根表名
func (q *Query) Table() string {
	return q.table
}

// Select 追加投影列
func (q *Query) Select(columns ...string) *Query {
	for _, c := range columns {
		q.fields = append(q.fields, field{expr: c})
	}
	return q
}

// Join 左连接一张表并投影其中的列，例如
// Join("users AS owner", "owner.id = videos.owner_id", "owner.user_name AS owner_user_name")
func (q *Query) Join(table, on string, columns ...string) *Query {
	q.joins = append(q.joins, join{clause: fmt.Sprintf("LEFT JOIN %s ON %s", table, on)})
	return q.Select(columns...)
}

// InnerJoin 内连接，用于以关系表为根的查询
func (q *Query) InnerJoin(table, on string, args ...interface{}) *Query {
	q.joins = append(q.joins, join{clause: fmt.Sprintf("INNER JOIN %s ON %s", table, on), args: args})
	return q
}

// CountOf 派生计数：from 中满足 cond 的行数
func (q *Query) CountOf(alias, from, cond string, args ...interface{}) *Query {
	q.fields = append(q.fields, field{
		expr:  fmt.Sprintf("(SELECT COUNT(*) FROM %s WHERE %s)", from, cond),
		alias: alias,
		args:  args,
	})
	return q
}

// ExistsIn 派生布尔标记：from 中是否存在满足 cond 的行
func (q *Query) ExistsIn(alias, from, cond string, args ...interface{}) *Query {
	q.fields = append(q.fields, field{
		expr:  fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s)", from, cond),
		alias: alias,
		args:  args,
	})
	return q
}

// SumOf 派生求和：from 中满足 cond 的 column 之和，无行时为 0
func (q *Query) SumOf(alias, column, from, cond string, args ...interface{}) *Query {
	q.fields = append(q.fields, field{
		expr:  fmt.Sprintf("(SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s)", column, from, cond),
		alias: alias,
		args:  args,
	})
	return q
}

// Where 追加过滤条件
func (q *Query) Where(clause string, args ...interface{}) *Query {
	q.where.Add(clause, args...)
	return q
}

// WhereIf cond 为真时追加过滤条件
func (q *Query) WhereIf(cond bool, clause string, args ...interface{}) *Query {
	q.where.AddIf(cond, clause, args...)
	return q
}

// OrderBy 追加排序项，空列忽略
func (q *Query) OrderBy(s Sort) *Query {
	if s.Column != "" {
		q.sorts = append(q.sorts, s)
	}
	return q
}

// Tiebreak 设置兜底排序列，保证相同排序键下分页稳定
func (q *Query) Tiebreak(column string, desc bool) *Query {
	q.tiebreak = &Sort{Column: column, Desc: desc}
	return q
}

// Paginate 设置分页
func (q *Query) Paginate(p Page) *Query {
	q.page = &p
	return q
}

// selectClause 拼接投影与派生字段，参数按出现顺序排列
func (q *Query) selectClause() (string, []interface{}) {
	if len(q.fields) == 0 {
		return q.table + ".*", nil
	}
	parts := make([]string, 0, len(q.fields))
	var args []interface{}
	for _, f := range q.fields {
		parts = append(parts, f.sql())
		args = append(args, f.args...)
	}
	return strings.Join(parts, ", "), args
}

func (q *Query) orderClause() string {
	parts := make([]string, 0, len(q.sorts)+1)
	for _, s := range q.sorts {
		parts = append(parts, s.String())
	}
	if q.tiebreak != nil {
		parts = append(parts, q.tiebreak.String())
	}
	return strings.Join(parts, ", ")
}

func (q *Query) base(db *gorm.DB) *gorm.DB {
	tx := db.Table(q.table)
	for _, j := range q.joins {
		tx = tx.Joins(j.clause, j.args...)
	}
	if !q.where.IsEmpty() {
		clause, args := q.where.Build()
		tx = tx.Where(clause, args...)
	}
	return tx
}

// Compile 编译为可执行的 gorm 查询，调用方负责 Scan
func (q *Query) Compile(db *gorm.DB) *gorm.DB {
	tx := q.base(db)

	sel, args := q.selectClause()
	if len(args) > 0 {
		tx = tx.Select(sel, args...)
	} else {
		tx = tx.Select(sel)
	}

	if order := q.orderClause(); order != "" {
		tx = tx.Order(order)
	}
	if q.page != nil {
		tx = tx.Offset(q.page.Offset()).Limit(q.page.Limit)
	}
	return tx
}

// CountTotal 统计同样过滤与连接条件下的总行数，忽略排序与分页
func (q *Query) CountTotal(db *gorm.DB) (int64, error) {
	var total int64
	err := q.base(db).Count(&total).Error
	return total, err
}

// Find 执行查询并扫描到 dest
func (q *Query) Find(db *gorm.DB, dest interface{}) error {
	return q.Compile(db).Scan(dest).Error
}

// FindPage 先统计总数再取当前页
func (q *Query) FindPage(db *gorm.DB, dest interface{}) (int64, error) {
	total, err := q.CountTotal(db)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := q.Find(db, dest); err != nil {
		return 0, err
	}
	return total, nil
}

// First 取第一行，返回是否命中
func (q *Query) First(db *gorm.DB, dest interface{}) (bool, error) {
	tx := q.Compile(db).Limit(1).Scan(dest)
	return tx.RowsAffected > 0, tx.Error
}
