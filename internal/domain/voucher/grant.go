package voucher

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("voucher: grant not found")
	ErrNotApplicable = errors.New("voucher: grant is not applicable")
)

// State is the explicit grant lifecycle. The storefront previously drove this
// with an is_deleted flag next to a free-form status string; a single tagged
// state keeps combinations like deleted-yet-active unrepresentable.
type State string

const (
	StateUpcoming State = "upcoming"
	StateActive   State = "active"
	StateInactive State = "inactive"
	StateExpired  State = "expired"
	StateUsedUp   State = "used_up"
	StateDeleted  State = "deleted"
)

// Grant entitles one user to a discount code. One grant row is materialised
// per eligible user when a campaign is created.
type Grant struct {
	ID              string
	UserID          string
	Code            string
	DiscountPercent decimal.Decimal
	StartDate       time.Time
	EndDate         time.Time
	// UsageLimit of zero means unlimited; RemainingCount is only tracked when
	// a limit is set.
	UsageLimit     int
	UsageCount     int
	RemainingCount int
	State          State
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewGrant(id, userID, code string, discountPercent decimal.Decimal, start, end time.Time, usageLimit int) *Grant {
	now := time.Now().UTC()
	state := StateActive
	if now.Before(start) {
		state = StateUpcoming
	}
	return &Grant{
		ID:              id,
		UserID:          userID,
		Code:            code,
		DiscountPercent: discountPercent,
		StartDate:       start,
		EndDate:         end,
		UsageLimit:      usageLimit,
		RemainingCount:  usageLimit,
		State:           state,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Applicable reports whether the grant may discount an order evaluated at the
// given instant. An inapplicable grant is ignored at checkout, never rejected.
func (g *Grant) Applicable(now time.Time) bool {
	if g.State != StateActive {
		return false
	}
	if now.Before(g.StartDate) || now.After(g.EndDate) {
		return false
	}
	if g.UsageLimit > 0 && g.RemainingCount <= 0 {
		return false
	}
	return true
}

// DiscountAmount is the percentage of the subtotal this grant shaves off.
func (g *Grant) DiscountAmount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(g.DiscountPercent).Div(decimal.NewFromInt(100))
}

// Redeem consumes one use. When the last remaining use is spent the grant
// flips to inactive so later checkouts fall back to zero discount.
func (g *Grant) Redeem(now time.Time) error {
	if !g.Applicable(now) {
		return ErrNotApplicable
	}
	g.UsageCount++
	if g.UsageLimit > 0 {
		g.RemainingCount--
		if g.RemainingCount == 0 {
			g.State = StateInactive
		}
	}
	g.touch()
	return nil
}

func (g *Grant) MarkDeleted() {
	g.State = StateDeleted
	g.touch()
}

func (g *Grant) touch() {
	g.UpdatedAt = time.Now().UTC()
}

func (g *Grant) Clone() *Grant {
	if g == nil {
		return nil
	}
	clone := *g
	return &clone
}
