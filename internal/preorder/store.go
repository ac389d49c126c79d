package preorder

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store persists pre-orders.
type Store interface {
	Create(ctx context.Context, in Input) (*Preorder, error)
}

// GormStore writes to the preorders table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the preorders table if needed.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&Preorder{})
}

// Create inserts one row and returns it with its id and creation time.
func (s *GormStore) Create(ctx context.Context, in Input) (*Preorder, error) {
	p := &Preorder{Name: in.Name, Email: in.Email, Variant: in.Variant}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("insert preorder: %w", err)
	}
	return p, nil
}
