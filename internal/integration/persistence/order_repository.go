package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
	"github.com/fabrie/backend/internal/integration/persistence/model"
)

// orderRepository implements the adapter.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance.
func NewOrderRepository(db *gorm.DB) adapter.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create inserts a new order. The product_id primary key rejects duplicates atomically.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderModel := model.OrderFromEntity(order)
	result := r.db.WithContext(ctx).Create(orderModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrOrderCodeTaken
		}
		return result.Error
	}
	return nil
}

// FindByCode retrieves an order by its product_id.
func (r *orderRepository) FindByCode(ctx context.Context, code string) (*entity.Order, error) {
	var orderModel model.OrderModel
	result := r.db.WithContext(ctx).Where("product_id = ?", code).First(&orderModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrOrderNotFound
		}
		return nil, result.Error
	}
	return orderModel.ToEntity(), nil
}

// List retrieves orders matching the filter, most recent order date first.
func (r *orderRepository) List(ctx context.Context, filter adapter.OrderFilter) ([]*entity.Order, error) {
	query := r.db.WithContext(ctx).Model(&model.OrderModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Customer != "" {
		pattern := "%" + strings.ToLower(filter.Customer) + "%"
		query = query.Where("LOWER(customer_name) LIKE ?", pattern)
	}
	if filter.IsSet != nil {
		query = query.Where("is_set = ?", *filter.IsSet)
	}
	if filter.Period.Start != nil {
		query = query.Where("order_date >= ?", *filter.Period.Start)
	}
	if filter.Period.End != nil {
		query = query.Where("order_date <= ?", *filter.Period.End)
	}

	var orderModels []model.OrderModel
	if err := query.Order("order_date DESC, product_id ASC").Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToEntity()
	}
	return orders, nil
}

// Update persists every field of an existing order. An order deleted concurrently is not
// recreated.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderModel := model.OrderFromEntity(order)
	result := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("product_id = ?", order.ProductID).
		Select("*").
		Updates(orderModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrOrderNotFound
	}
	return nil
}

// Delete removes an order by its product_id.
func (r *orderRepository) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Delete(&model.OrderModel{}, "product_id = ?", code)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrOrderNotFound
	}
	return nil
}
