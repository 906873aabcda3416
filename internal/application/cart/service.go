package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/floramart/floramart/internal/domain/cart"
	"github.com/floramart/floramart/internal/domain/catalog"
	"github.com/floramart/floramart/internal/pkg/logging"
)

type IDGenerator interface {
	NewID() string
}

type Service struct {
	carts   domain.Repository
	flowers catalog.Repository
	idGen   IDGenerator
}

func NewService(carts domain.Repository, flowers catalog.Repository, idGen IDGenerator) *Service {
	return &Service{carts: carts, flowers: flowers, idGen: idGen}
}

type AddItemInput struct {
	UserID   string
	FlowerID string
	Quantity int
}

// AddItem puts a flower into the user's cart, snapshotting the current
// catalog price. Adding a flower already in the cart raises that line's
// quantity instead of creating a second one.
func (s *Service) AddItem(ctx context.Context, input AddItemInput) (*domain.Item, error) {
	logger := logging.FromContext(ctx).With(
		zap.String("component", "cart_service"),
		zap.String("user_id", input.UserID),
	)

	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	flower, err := s.flowers.FindByID(ctx, input.FlowerID)
	if err != nil {
		return nil, fmt.Errorf("cart: resolve flower: %w", err)
	}
	if !flower.Sellable() {
		return nil, fmt.Errorf("%w: flower %s", catalog.ErrUnavailable, flower.ID)
	}

	existing, err := s.carts.FindByUserAndFlower(ctx, input.UserID, input.FlowerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("cart: lookup line: %w", err)
	}

	quantity := input.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > flower.AvailableQuantity {
		return nil, fmt.Errorf("%w: flower %s has %d, requested %d",
			catalog.ErrInsufficientStock, flower.ID, flower.AvailableQuantity, quantity)
	}

	if existing != nil {
		if err := existing.ChangeQuantity(quantity); err != nil {
			return nil, err
		}
		if err := s.carts.Save(ctx, existing); err != nil {
			return nil, fmt.Errorf("cart: save line: %w", err)
		}
		logger.Info("cart_item_merged", zap.String("flower_id", input.FlowerID), zap.Int("quantity", quantity))
		return existing, nil
	}

	item, err := domain.NewItem(s.idGen.NewID(), input.UserID, input.FlowerID, input.Quantity, flower.Price)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("cart: save line: %w", err)
	}
	logger.Info("cart_item_added", zap.String("flower_id", input.FlowerID), zap.Int("quantity", input.Quantity))
	return item, nil
}

// UpdateQuantity changes one line's quantity, re-validating against current
// stock.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Item, error) {
	item, err := s.carts.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domain.ErrNotFound
	}

	flower, err := s.flowers.FindByID(ctx, item.FlowerID)
	if err != nil {
		return nil, fmt.Errorf("cart: resolve flower: %w", err)
	}
	if quantity > flower.AvailableQuantity {
		return nil, fmt.Errorf("%w: flower %s has %d, requested %d",
			catalog.ErrInsufficientStock, flower.ID, flower.AvailableQuantity, quantity)
	}

	if err := item.ChangeQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("cart: save line: %w", err)
	}
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	item, err := s.carts.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return domain.ErrNotFound
	}
	return s.carts.Delete(ctx, itemID)
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Item, error) {
	return s.carts.ListByUser(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.carts.ClearByUser(ctx, userID)
}
