package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	engine      *pricing.Engine
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	engine *pricing.Engine,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		engine:      engine,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get loads the cart for a session, or returns a fresh empty cart.
func (s *cartService) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		cart = model.NewCart(sessionID)
		s.engine.Apply(cart)
	}
	return cart, nil
}

// AddLine adds a product to the cart, replacing an existing line with the
// same product ID. Display fields and price are copied from the catalogue at
// add time.
func (s *cartService) AddLine(ctx context.Context, sessionID, productID string, qty int) (*model.Cart, error) {
	if qty <= 0 {
		s.logger.Warn().
			Str("product_id", productID).
			Int("qty", qty).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		s.logger.Warn().Str("product_id", productID).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	if qty > product.CountInStock {
		s.logger.Warn().
			Str("product_id", productID).
			Int("qty", qty).
			Int("count_in_stock", product.CountInStock).
			Msg("quantity exceeds stock")
		return nil, model.ErrInsufficientStock
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line := model.CartLine{
		ProductID:    product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Price:        product.Price,
		Qty:          qty,
		CountInStock: product.CountInStock,
	}

	replaced := false
	for i, existing := range cart.Lines {
		if existing.ProductID == productID {
			cart.Lines[i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		cart.Lines = append(cart.Lines, line)
	}

	return s.recomputeAndSave(ctx, cart)
}

// RemoveLine removes the line with the given product ID.
func (s *cartService) RemoveLine(ctx context.Context, sessionID, productID string) (*model.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	filtered := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ProductID != productID {
			filtered = append(filtered, line)
		}
	}
	cart.Lines = filtered

	return s.recomputeAndSave(ctx, cart)
}

// SetShippingAddress records the checkout shipping address.
func (s *cartService) SetShippingAddress(ctx context.Context, sessionID string, addr model.Address) (*model.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.ShippingAddress = &addr

	return s.recomputeAndSave(ctx, cart)
}

// SetPaymentMethod records the checkout payment method.
func (s *cartService) SetPaymentMethod(ctx context.Context, sessionID, method string) (*model.Cart, error) {
	if method == "" {
		return nil, model.ErrMissingPayment
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.PaymentMethod = method

	return s.recomputeAndSave(ctx, cart)
}

// Clear empties the cart's lines, keeping the checkout fields.
func (s *cartService) Clear(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Lines = []model.CartLine{}

	return s.recomputeAndSave(ctx, cart)
}

// Reset replaces the whole cart with a fresh empty one.
func (s *cartService) Reset(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart := model.NewCart(sessionID)
	return s.recomputeAndSave(ctx, cart)
}

// recomputeAndSave funnels every mutation through the pricing engine so the
// derived fields can never go stale, then persists the full cart.
func (s *cartService) recomputeAndSave(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	s.engine.Apply(cart)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error().Err(err).Str("session_id", cart.SessionID).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().
		Str("session_id", cart.SessionID).
		Int("line_count", len(cart.Lines)).
		Str("grand_total", cart.GrandTotal.String()).
		Msg("cart recomputed")

	return cart, nil
}
