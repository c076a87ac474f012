package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/proshop/backend/app/models"
	"github.com/proshop/backend/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID string
	Qty       int
}

type ShippingAddressInput struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

type PlaceOrderInput struct {
	OrderItems      []OrderItemInput
	PaymentMethod   string
	TaxPrice        decimal.Decimal
	ShippingPrice   decimal.Decimal
	TotalPrice      decimal.Decimal
	ShippingAddress ShippingAddressInput
}

type OrderService struct {
	db               *gorm.DB
	productRepo      repositories.ProductRepositoryImpl
	orderRepo        repositories.OrderRepositoryImpl
	orderItemRepo    repositories.OrderItemRepositoryImpl
	shippingAddrRepo repositories.ShippingAddressRepositoryImpl
}

func NewOrderService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepositoryImpl,
	orderItemRepo repositories.OrderItemRepositoryImpl,
	shippingAddrRepo repositories.ShippingAddressRepositoryImpl,
) *OrderService {
	return &OrderService{
		db:               db,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		orderItemRepo:    orderItemRepo,
		shippingAddrRepo: shippingAddrRepo,
	}
}

// PlaceOrder creates the order, its shipping address and its items, and
// decrements stock for every ordered product, all in one transaction. Item
// name/price/image are snapshots taken from the product at this moment.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*models.Order, error) {
	if len(in.OrderItems) == 0 {
		return nil, ErrNoOrderItems
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: Rolling back order transaction: %v", r)
			tx.Rollback()
		}
	}()

	order := &models.Order{
		UserID:        &userID,
		PaymentMethod: in.PaymentMethod,
		TaxPrice:      in.TaxPrice,
		ShippingPrice: in.ShippingPrice,
		TotalPrice:    in.TotalPrice,
	}
	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	address := &models.ShippingAddress{
		OrderID:       &order.ID,
		Address:       in.ShippingAddress.Address,
		City:          in.ShippingAddress.City,
		PostalCode:    in.ShippingAddress.PostalCode,
		Country:       in.ShippingAddress.Country,
		ShippingPrice: in.ShippingPrice,
	}
	if err := s.shippingAddrRepo.Create(ctx, tx, address); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create shipping address: %w", err)
	}

	orderItems := make([]models.OrderItem, 0, len(in.OrderItems))
	for _, item := range in.OrderItems {
		product, err := s.productRepo.GetByIDTx(ctx, tx, item.ProductID)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to get product %s: %w", item.ProductID, err)
		}
		if product == nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: &product.ID,
			OrderID:   &order.ID,
			Name:      product.Name,
			Qty:       item.Qty,
			Price:     product.Price,
			Image:     product.Image,
		})

		// Unconditional decrement; stock may go negative.
		if err := s.productRepo.DecrementStock(ctx, tx, product.ID, item.Qty); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to decrement stock for product %s: %w", product.ID, err)
		}
	}

	if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// GetOrderForUser returns the order only to its owner or to an admin.
func (s *OrderService) GetOrderForUser(ctx context.Context, orderID string, user *models.User) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !user.IsAdmin && (order.UserID == nil || *order.UserID != user.ID) {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (s *OrderService) MyOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.FindByUserID(ctx, userID)
}

func (s *OrderService) AllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAllOrders(ctx)
}

// MarkPaid flips isPaid and stamps paidAt. The transition is monotonic; a
// paid order stays paid with its original timestamp.
func (s *OrderService) MarkPaid(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.IsPaid {
		now := time.Now()
		order.IsPaid = true
		order.PaidAt = &now
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// MarkDelivered flips isDelivered and stamps deliveredAt, monotonically.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.IsDelivered {
		now := time.Now()
		order.IsDelivered = true
		order.DeliveredAt = &now
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}
