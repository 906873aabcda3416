package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/floramart/floramart/internal/domain/address"
)

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) FindByIDForUser(ctx context.Context, id, userID string) (*address.Address, error) {
	var row addressRow
	err := conn(ctx, r.db).First(&row, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, address.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *AddressRepository) Save(ctx context.Context, addr *address.Address) error {
	row := addressRow{
		ID:        addr.ID,
		UserID:    addr.UserID,
		Recipient: addr.Recipient,
		Detail:    addr.Detail,
		CreatedAt: addr.CreatedAt,
	}
	return conn(ctx, r.db).Save(&row).Error
}

var _ address.Repository = (*AddressRepository)(nil)
