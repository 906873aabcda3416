package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/floramart/floramart/internal/domain/address"
	"github.com/floramart/floramart/internal/domain/cart"
	"github.com/floramart/floramart/internal/domain/catalog"
	"github.com/floramart/floramart/internal/domain/order"
	"github.com/floramart/floramart/internal/domain/voucher"
)

type flowerRow struct {
	ID                string          `gorm:"primaryKey;size:36"`
	Name              string          `gorm:"size:255"`
	Price             decimal.Decimal `gorm:"type:numeric(14,2)"`
	AvailableQuantity int             `gorm:"check:available_quantity >= 0"`
	State             string          `gorm:"size:16;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (flowerRow) TableName() string { return "flowers" }

func (r flowerRow) toDomain() *catalog.Flower {
	return &catalog.Flower{
		ID:                r.ID,
		Name:              r.Name,
		Price:             r.Price,
		AvailableQuantity: r.AvailableQuantity,
		State:             catalog.Lifecycle(r.State),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func flowerToRow(f *catalog.Flower) flowerRow {
	return flowerRow{
		ID:                f.ID,
		Name:              f.Name,
		Price:             f.Price,
		AvailableQuantity: f.AvailableQuantity,
		State:             string(f.State),
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

type cartItemRow struct {
	ID        string          `gorm:"primaryKey;size:36"`
	UserID    string          `gorm:"size:36;index:idx_cart_user_flower,unique"`
	FlowerID  string          `gorm:"size:36;index:idx_cart_user_flower,unique"`
	Quantity  int             `gorm:"check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (cartItemRow) TableName() string { return "cart_items" }

func (r cartItemRow) toDomain() *cart.Item {
	return &cart.Item{
		ID:        r.ID,
		UserID:    r.UserID,
		FlowerID:  r.FlowerID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func cartItemToRow(i *cart.Item) cartItemRow {
	return cartItemRow{
		ID:        i.ID,
		UserID:    i.UserID,
		FlowerID:  i.FlowerID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type addressRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;index"`
	Recipient string `gorm:"size:255"`
	Detail    string `gorm:"size:512"`
	CreatedAt time.Time
}

func (addressRow) TableName() string { return "addresses" }

func (r addressRow) toDomain() *address.Address {
	return &address.Address{
		ID:        r.ID,
		UserID:    r.UserID,
		Recipient: r.Recipient,
		Detail:    r.Detail,
		CreatedAt: r.CreatedAt,
	}
}

type voucherGrantRow struct {
	ID              string          `gorm:"primaryKey;size:36"`
	UserID          string          `gorm:"size:36;index"`
	Code            string          `gorm:"size:64;index"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2)"`
	StartDate       time.Time
	EndDate         time.Time
	UsageLimit      int
	UsageCount      int
	RemainingCount  int
	State           string `gorm:"size:16;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (voucherGrantRow) TableName() string { return "voucher_grants" }

func (r voucherGrantRow) toDomain() *voucher.Grant {
	return &voucher.Grant{
		ID:              r.ID,
		UserID:          r.UserID,
		Code:            r.Code,
		DiscountPercent: r.DiscountPercent,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		UsageLimit:      r.UsageLimit,
		UsageCount:      r.UsageCount,
		RemainingCount:  r.RemainingCount,
		State:           voucher.State(r.State),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func voucherGrantToRow(g *voucher.Grant) voucherGrantRow {
	return voucherGrantRow{
		ID:              g.ID,
		UserID:          g.UserID,
		Code:            g.Code,
		DiscountPercent: g.DiscountPercent,
		StartDate:       g.StartDate,
		EndDate:         g.EndDate,
		UsageLimit:      g.UsageLimit,
		UsageCount:      g.UsageCount,
		RemainingCount:  g.RemainingCount,
		State:           string(g.State),
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

type orderRow struct {
	ID             string           `gorm:"primaryKey;size:36"`
	UserID         string           `gorm:"size:36;index"`
	PhoneNumber    string           `gorm:"size:32"`
	PaymentMethod  string           `gorm:"size:32"`
	DeliveryMethod string           `gorm:"size:32"`
	AddressID      string           `gorm:"size:36"`
	VoucherGrantID string           `gorm:"size:36"`
	PaymentStatus  string           `gorm:"size:16;index"`
	Subtotal       decimal.Decimal  `gorm:"type:numeric(14,2)"`
	ShippingFee    decimal.Decimal  `gorm:"type:numeric(14,2)"`
	Discount       decimal.Decimal  `gorm:"type:numeric(14,2)"`
	Total          decimal.Decimal  `gorm:"type:numeric(14,2)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Details        []orderDetailRow `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRow) TableName() string { return "orders" }

type orderDetailRow struct {
	ID        string          `gorm:"primaryKey;size:36"`
	OrderID   string          `gorm:"size:36;index"`
	FlowerID  string          `gorm:"size:36"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	Quantity  int             `gorm:"check:quantity > 0"`
}

func (orderDetailRow) TableName() string { return "order_details" }

func (r orderRow) toDomain() *order.Order {
	details := make([]order.Detail, 0, len(r.Details))
	for _, d := range r.Details {
		details = append(details, order.Detail{
			ID:        d.ID,
			OrderID:   d.OrderID,
			FlowerID:  d.FlowerID,
			UnitPrice: d.UnitPrice,
			Quantity:  d.Quantity,
		})
	}
	return &order.Order{
		ID:             r.ID,
		UserID:         r.UserID,
		PhoneNumber:    r.PhoneNumber,
		PaymentMethod:  r.PaymentMethod,
		DeliveryMethod: r.DeliveryMethod,
		AddressID:      r.AddressID,
		VoucherGrantID: r.VoucherGrantID,
		PaymentStatus:  order.PaymentStatus(r.PaymentStatus),
		Subtotal:       r.Subtotal,
		ShippingFee:    r.ShippingFee,
		Discount:       r.Discount,
		Total:          r.Total,
		Details:        details,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func orderToRow(o *order.Order) orderRow {
	details := make([]orderDetailRow, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, orderDetailRow{
			ID:        d.ID,
			OrderID:   d.OrderID,
			FlowerID:  d.FlowerID,
			UnitPrice: d.UnitPrice,
			Quantity:  d.Quantity,
		})
	}
	return orderRow{
		ID:             o.ID,
		UserID:         o.UserID,
		PhoneNumber:    o.PhoneNumber,
		PaymentMethod:  o.PaymentMethod,
		DeliveryMethod: o.DeliveryMethod,
		AddressID:      o.AddressID,
		VoucherGrantID: o.VoucherGrantID,
		PaymentStatus:  string(o.PaymentStatus),
		Subtotal:       o.Subtotal,
		ShippingFee:    o.ShippingFee,
		Discount:       o.Discount,
		Total:          o.Total,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Details:        details,
	}
}
