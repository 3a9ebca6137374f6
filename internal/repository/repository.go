// Package repository 提供数据访问层，实现排班引擎的 Store 接口
package repository

import (
	"context"
	"database/sql"

	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler"
)

// DB 数据库接口
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxRunner 支持事务的数据库连接（由 database.DB 实现）
type TxRunner interface {
	DB
	Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Scanner 行扫描接口
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Store 基于 PostgreSQL 的排班数据仓储
type Store struct {
	db TxRunner
}

// 编译期确认 Store 满足引擎的存储接口
var _ scheduler.Store = (*Store)(nil)

// NewStore 创建排班数据仓储
func NewStore(db TxRunner) *Store {
	return &Store{db: db}
}
