package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/luna/internal/models"
)

var DB *gorm.DB

var log = zap.NewNop()

// now is swapped in tests that need a fixed clock
var now = time.Now

// SetLogger sets the logger used by write paths
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l.Named("db")
}

// Initialize opens the SQLite database at path and runs migrations.
// An empty path uses DefaultPath.
func Initialize(path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		path = p
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Quiet by default
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer; a single connection also gives every
	// transaction a consistent view for the stats reads.
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	DB = db

	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug("database ready", zap.String("path", path))
	return nil
}

// DefaultPath returns ~/.luna/luna.db
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".luna", "luna.db"), nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// runMigrations creates/updates the database schema
func runMigrations() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.CustomFieldDefinition{},
		&models.Project{},
		&models.CustomFieldValue{},
		&models.List{},
		&models.TaskStatus{},
		&models.Task{},
		&models.Tag{},
		&models.TaskTag{},
		&models.ListTask{},
		&models.TaskDependency{},
		&models.TaskApproval{},
		&models.TaskComment{},
		&models.TaskCommentFile{},
		&models.Folder{},
		&models.File{},
		&models.TaskFile{},
		&models.MagicToken{},
		&models.Session{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		DB = nil
		return sqlDB.Close()
	}
	return nil
}
