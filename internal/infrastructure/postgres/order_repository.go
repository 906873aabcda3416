package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/floramart/floramart/internal/domain/order"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	row := orderToRow(o)
	return conn(ctx, r.db).Create(&row).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var row orderRow
	err := conn(ctx, r.db).Preload("Details").First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *OrderRepository) FindByIDForUser(ctx context.Context, id, userID string) (*order.Order, error) {
	var row orderRow
	err := conn(ctx, r.db).Preload("Details").
		First(&row, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	var rows []orderRow
	err := conn(ctx, r.db).Preload("Details").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	orders := make([]order.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, *row.toDomain())
	}
	return orders, nil
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status order.PaymentStatus) error {
	res := conn(ctx, r.db).Model(&orderRow{}).
		Where("id = ?", id).
		Updates(map[string]any{"payment_status": string(status), "updated_at": gorm.Expr("NOW()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return order.ErrNotFound
	}
	return nil
}

var _ order.Repository = (*OrderRepository)(nil)
