package variation

import (
	"context"
	"errors"
	"fmt"

	"variation-manager/core/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrPersistenceDisabled is returned when no draft database is configured.
var ErrPersistenceDisabled = errors.New("draft persistence is disabled")

// Repository stores drafts by product id.
type Repository interface {
	// Prepare migrates and verifies the drafts table.
	Prepare(ctx context.Context) error
	// Load returns the draft for productID, or nil when there is none.
	Load(ctx context.Context, productID string) (*Draft, error)
	// Save inserts or replaces the draft of draft.ProductID.
	Save(ctx context.Context, draft *Draft) error
	// Delete removes the draft of productID.
	Delete(ctx context.Context, productID string) error
}

// GormRepository is the GORM backed Repository.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Prepare implements Repository.
func (r *GormRepository) Prepare(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&Draft{}); err != nil {
		return fmt.Errorf("failed to migrate drafts table: %w", err)
	}
	missing, err := database.MissingColumns(db, Draft{}.TableName(), draftColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("drafts table is missing columns: %v", missing)
	}
	return nil
}

// Load implements Repository.
func (r *GormRepository) Load(ctx context.Context, productID string) (*Draft, error) {
	var draft Draft
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Take(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft for %s: %w", productID, err)
	}
	return &draft, nil
}

// Save implements Repository. The draft keeps the id and creation time of an
// existing row for the same product.
func (r *GormRepository) Save(ctx context.Context, draft *Draft) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Draft
		err := tx.Where("product_id = ?", draft.ProductID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if draft.ID == "" {
				draft.ID = uuid.NewString()
			}
			if err := tx.Create(draft).Error; err != nil {
				return fmt.Errorf("failed to create draft for %s: %w", draft.ProductID, err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to look up draft for %s: %w", draft.ProductID, err)
		}

		draft.ID = existing.ID
		draft.CreatedAt = existing.CreatedAt
		if err := tx.Save(draft).Error; err != nil {
			return fmt.Errorf("failed to update draft for %s: %w", draft.ProductID, err)
		}
		return nil
	})
}

// Delete implements Repository.
func (r *GormRepository) Delete(ctx context.Context, productID string) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&Draft{}).Error; err != nil {
		return fmt.Errorf("failed to delete draft for %s: %w", productID, err)
	}
	return nil
}
