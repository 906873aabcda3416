package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/floramart/floramart/internal/domain/catalog"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*catalog.Flower, error) {
	var row flowerRow
	err := conn(ctx, r.db).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *CatalogRepository) Save(ctx context.Context, flower *catalog.Flower) error {
	row := flowerToRow(flower)
	return conn(ctx, r.db).Save(&row).Error
}

// DeductStock decrements available quantity with a conditional update so the
// counter can never go negative, even when two checkouts race on the same
// flower. Zero rows affected means the guard lost.
func (r *CatalogRepository) DeductStock(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return catalog.ErrInvalidQuantity
	}
	res := conn(ctx, r.db).Model(&flowerRow{}).
		Where("id = ? AND available_quantity >= ?", id, quantity).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := conn(ctx, r.db).Model(&flowerRow{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return catalog.ErrNotFound
		}
		return catalog.ErrInsufficientStock
	}
	return nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)
