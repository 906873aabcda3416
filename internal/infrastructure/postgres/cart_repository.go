package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/floramart/floramart/internal/domain/cart"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]cart.Item, error) {
	var rows []cartItemRow
	err := conn(ctx, r.db).Where("user_id = ?", userID).Order("created_at").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]cart.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row.toDomain())
	}
	return items, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*cart.Item, error) {
	var row cartItemRow
	err := conn(ctx, r.db).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *CartRepository) FindByUserAndFlower(ctx context.Context, userID, flowerID string) (*cart.Item, error) {
	var row cartItemRow
	err := conn(ctx, r.db).First(&row, "user_id = ? AND flower_id = ?", userID, flowerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *CartRepository) Save(ctx context.Context, item *cart.Item) error {
	row := cartItemToRow(item)
	return conn(ctx, r.db).Save(&row).Error
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Delete(&cartItemRow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func (r *CartRepository) ClearByUser(ctx context.Context, userID string) error {
	return conn(ctx, r.db).Delete(&cartItemRow{}, "user_id = ?", userID).Error
}

var _ cart.Repository = (*CartRepository)(nil)
