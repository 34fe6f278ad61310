package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/quizzone/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned by every store when a key has never been saved.
var ErrNotFound = errors.New("key not found")

// KeyValueStore is the opaque persistence provider. Implementations must be
// safe for concurrent use.
type KeyValueStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ProgressRepository persists the user progress record under a single key.
type ProgressRepository interface {
	Load(ctx context.Context) (*models.UserProgress, error)
	Save(ctx context.Context, progress *models.UserProgress) error
}

// IsNotFoundError checks if error represents a missing record
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
