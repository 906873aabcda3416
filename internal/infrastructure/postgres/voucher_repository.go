package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/floramart/floramart/internal/domain/voucher"
)

type VoucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func (r *VoucherRepository) FindByIDForUser(ctx context.Context, id, userID string) (*voucher.Grant, error) {
	var row voucherGrantRow
	err := conn(ctx, r.db).First(&row, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, voucher.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *VoucherRepository) Save(ctx context.Context, grant *voucher.Grant) error {
	row := voucherGrantToRow(grant)
	return conn(ctx, r.db).Save(&row).Error
}

var _ voucher.Repository = (*VoucherRepository)(nil)
