package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	engine      *pricing.Engine
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	engine *pricing.Engine,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		engine:      engine,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Submit creates an order from the session's cart.
//
// The monetary fields are re-derived from current catalogue prices and the
// cart's quantities; any totals carried on the cart are discarded. Each cart
// line is frozen into an OrderLine carrying its own copy of the product
// display fields, so later catalogue edits never alter the placed order.
// Submission is not idempotent: resubmitting creates a second, distinct order.
func (s *orderService) Submit(ctx context.Context, userID, sessionID string) (*model.Order, error) {
	cart, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if cart == nil || len(cart.Lines) == 0 {
		s.logger.Warn().Str("session_id", sessionID).Msg("submit on empty cart")
		return nil, model.ErrEmptyOrder
	}

	if cart.ShippingAddress == nil {
		return nil, model.ErrMissingAddress
	}

	if cart.PaymentMethod == "" {
		return nil, model.ErrMissingPayment
	}

	productIDs := make([]string, len(cart.Lines))
	for i, line := range cart.Lines {
		productIDs[i] = line.ProductID
	}

	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Str("session_id", sessionID).
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Rebuild the lines from the catalogue: authoritative price and display
	// fields, submitted quantities.
	orderID := uuid.New()
	orderLines := make([]model.OrderLine, len(cart.Lines))
	pricedLines := make([]model.CartLine, len(cart.Lines))
	for i, line := range cart.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			s.logger.Warn().
				Str("session_id", sessionID).
				Str("product_id", line.ProductID).
				Msg("product no longer resolvable")
			return nil, model.ErrProductNotFound
		}

		if line.Qty <= 0 {
			return nil, model.ErrInvalidQuantity
		}

		orderLines[i] = model.OrderLine{
			ID:        uuid.New(),
			OrderID:   orderID,
			LineNo:    i,
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Qty:       line.Qty,
		}
		pricedLines[i] = model.CartLine{
			ProductID: product.ID,
			Price:     product.Price,
			Qty:       line.Qty,
		}
	}

	totals := s.engine.Recompute(pricedLines)

	order := &model.Order{
		ID:              orderID,
		UserID:          userID,
		Lines:           orderLines,
		ShippingAddress: *cart.ShippingAddress,
		PaymentMethod:   cart.PaymentMethod,
		ItemsSubtotal:   totals.ItemsSubtotal,
		ShippingFee:     totals.ShippingFee,
		TaxAmount:       totals.TaxAmount,
		GrandTotal:      totals.GrandTotal,
		CreatedAt:       time.Now(),
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	if err = s.orderRepo.CreateOrderLines(ctx, tx, orderLines); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("line_count", len(orderLines)).
			Msg("failed to create order lines")
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	// The order stands even if the cart cleanup fails.
	if delErr := s.cartRepo.Delete(ctx, sessionID); delErr != nil {
		s.logger.Warn().
			Err(delErr).
			Str("session_id", sessionID).
			Str("order_id", order.ID.String()).
			Msg("failed to clear cart after submit")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Int("line_count", len(orderLines)).
		Str("grand_total", order.GrandTotal.String()).
		Msg("order submitted")

	return order, nil
}

// GetByID retrieves an order. Non-admin callers may only read their own.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID, callerID string, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !isAdmin && order.UserID != callerID {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("caller_id", callerID).
			Msg("caller does not own order")
		return nil, model.ErrForbidden
	}

	return order, nil
}

// ListMine retrieves all orders owned by the caller.
func (s *orderService) ListMine(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll retrieves every order in the system.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// MarkPaid records a payment confirmation on a not-yet-paid order. The
// confirmation details are recorded verbatim as supplied by the gateway
// callback. The transition is a conditional update: a racing duplicate
// confirmation loses and surfaces as a conflict.
func (s *orderService) MarkPaid(ctx context.Context, id uuid.UUID, req *model.PaymentConfirmationRequest) (*model.Order, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Payment confirmation is required")
	}

	now := time.Now()
	conf := model.PaymentConfirmation{
		ExternalID:  req.ExternalID,
		Status:      req.Status,
		PayerEmail:  req.PayerEmail,
		ConfirmedAt: now,
	}

	updated, err := s.orderRepo.MarkPaid(ctx, id, now, conf)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order paid")
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	if !updated {
		order, getErr := s.orderRepo.GetByID(ctx, id)
		if getErr != nil {
			return nil, fmt.Errorf("failed to mark order paid: %w", getErr)
		}
		if order == nil {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Warn().Str("order_id", id.String()).Msg("order already paid")
		return nil, model.ErrAlreadyPaid
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("payment_status", conf.Status).
		Msg("order marked paid")

	return order, nil
}

// MarkDelivered records delivery on a not-yet-delivered order. Payment is
// deliberately not a precondition.
func (s *orderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	updated, err := s.orderRepo.MarkDelivered(ctx, id, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order delivered")
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	if !updated {
		order, getErr := s.orderRepo.GetByID(ctx, id)
		if getErr != nil {
			return nil, fmt.Errorf("failed to mark order delivered: %w", getErr)
		}
		if order == nil {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Warn().Str("order_id", id.String()).Msg("order already delivered")
		return nil, model.ErrAlreadyDelivered
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order marked delivered")

	return order, nil
}
