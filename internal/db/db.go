package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options describes how to reach the relational store.
type Options struct {
	Driver string
	// Path is the sqlite database file; empty falls back to portfolio.db.
	Path string
	// URL is the postgres connection string.
	URL       string
	ConnectTO time.Duration
	PingTO    time.Duration
	Logger    *zap.Logger
}

// Models lists every table managed by AutoMigrate.
func Models() []any {
	return []any{
		&Project{},
		&GalleryItem{},
		&CVData{},
		&Writing{},
		&Album{},
		&Tag{},
		&PhotoLocation{},
		&PhotoDevice{},
	}
}

// Open 打开数据库连接并执行自动迁移。
func Open(ctx context.Context, opt Options) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: newGormLogger(opt.Logger)}

	var (
		gdb *gorm.DB
		err error
	)
	switch strings.ToLower(strings.TrimSpace(opt.Driver)) {
	case "", DriverSQLite:
		path := strings.TrimSpace(opt.Path)
		if path == "" {
			path = "portfolio.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		gdb, err = gorm.Open(sqlite.Open(path), cfg)
	case DriverPostgres:
		var pool *pgxpool.Pool
		pool, err = openPool(ctx, opt)
		if err != nil {
			return nil, err
		}
		gdb, err = gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), cfg)
		if err != nil {
			pool.Close()
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opt.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate 自动迁移模式，为所有模型创建表
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying sql.DB.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func openPool(ctx context.Context, opt Options) (*pgxpool.Pool, error) {
	if strings.TrimSpace(opt.URL) == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.New(cctx, opt.URL)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return pool, nil
}

func newGormLogger(zl *zap.Logger) logger.Interface {
	if zl == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.New(zap.NewStdLog(zl.Named("gorm")), logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
