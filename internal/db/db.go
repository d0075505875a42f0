package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bellari/internal/locale"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Options 描述打开数据库所需的参数。
type Options struct {
	// Driver 取值 sqlite、postgres、mysql、sqlserver，留空时使用 sqlite。
	Driver string
	// Path 为 SQLite 文件路径。
	Path string
	// DSN 为服务端数据库的连接串。
	DSN      string
	LogLevel logger.LogLevel
}

// Init 打开数据库连接、执行自动迁移并设置全局 DB。
func Init(opts Options) error {
	gdb, err := Open(opts)
	if err != nil {
		return err
	}
	if err := Migrate(gdb); err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open 根据驱动类型建立连接，不做迁移。
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return gdb, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	dsn := strings.TrimSpace(opts.DSN)

	switch driver {
	case "", "sqlite", "sqlite3":
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			path = "bellari.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		return sqlite.Open(sqliteDSN(path)), nil
	case "postgres", "postgresql":
		if dsn == "" {
			return nil, errors.New("postgres requires DATABASE_URL")
		}
		return postgres.Open(dsn), nil
	case "mysql", "mariadb":
		if dsn == "" {
			return nil, errors.New("mysql requires DATABASE_URL")
		}
		return mysql.Open(dsn), nil
	case "sqlserver", "mssql":
		if dsn == "" {
			return nil, errors.New("sqlserver requires DATABASE_URL")
		}
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", opts.Driver)
	}
}

// sqliteDSN 为文件数据库开启外键约束，使 Section 随 Page 级联删除。
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=1"
	}
	return path + "?_foreign_keys=1"
}

// Migrate 创建或更新内容表结构。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&User{},
		&Page{},
		&Section{},
		&Image{},
		&SiteSetting{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// 旧数据没有语言列时默认视为法语。
	if err := gdb.Model(&Section{}).
		Where("language_code = '' OR language_code IS NULL").
		Update("language_code", locale.DefaultLanguage).Error; err != nil {
		return fmt.Errorf("backfill section language: %w", err)
	}

	return nil
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
