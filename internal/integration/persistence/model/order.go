package model

import (
	"time"

	"github.com/fabrie/backend/internal/domain/entity"
)

// OrderModel represents the orders table in the database.
type OrderModel struct {
	ProductID      string         `gorm:"column:product_id;type:varchar(100);primaryKey"`
	CustomerName   string         `gorm:"type:varchar(255);not null;index"`
	ProductName    string         `gorm:"type:varchar(255);not null"`
	ProductImage   string         `gorm:"type:varchar(255);not null;default:''"`
	FabricType     *string        `gorm:"type:varchar(100)"`
	FabricWeight   *string        `gorm:"type:varchar(50)"`
	Description    *string        `gorm:"type:text"`
	Colours        StringList     `gorm:"not null"`
	Size           StringList     `gorm:"column:size;not null"`
	SizeQuantities SizeQuantities `gorm:"not null"`
	OrderDate      time.Time      `gorm:"type:date;not null;index"`
	DeliveryDate   time.Time      `gorm:"type:date;not null"`
	Status         string         `gorm:"type:varchar(50);not null;index"`
	Quantity       int            `gorm:"not null"`
	IsSet          bool           `gorm:"not null"`
	SetMultiplier  int            `gorm:"not null"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
}

// TableName returns the table name for the OrderModel.
func (OrderModel) TableName() string {
	return "orders"
}

// ToEntity converts an OrderModel to a domain Order entity.
func (m *OrderModel) ToEntity() *entity.Order {
	sizeQuantities := make(map[string]*int, len(m.SizeQuantities))
	for size, q := range m.SizeQuantities {
		sizeQuantities[size] = q
	}

	return &entity.Order{
		ProductID:      m.ProductID,
		CustomerName:   m.CustomerName,
		ProductName:    m.ProductName,
		ProductImage:   m.ProductImage,
		FabricType:     m.FabricType,
		FabricWeight:   m.FabricWeight,
		Description:    m.Description,
		Colours:        append([]string{}, m.Colours...),
		Sizes:          append([]string{}, m.Size...),
		SizeQuantities: sizeQuantities,
		OrderDate:      entity.DateOf(m.OrderDate),
		DeliveryDate:   entity.DateOf(m.DeliveryDate),
		Status:         entity.OrderStatus(m.Status),
		Quantity:       m.Quantity,
		IsSet:          m.IsSet,
		SetMultiplier:  m.SetMultiplier,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// OrderFromEntity creates an OrderModel from a domain Order entity.
func OrderFromEntity(order *entity.Order) *OrderModel {
	return &OrderModel{
		ProductID:      order.ProductID,
		CustomerName:   order.CustomerName,
		ProductName:    order.ProductName,
		ProductImage:   order.ProductImage,
		FabricType:     order.FabricType,
		FabricWeight:   order.FabricWeight,
		Description:    order.Description,
		Colours:        StringList(order.Colours),
		Size:           StringList(order.Sizes),
		SizeQuantities: SizeQuantities(order.SizeQuantities),
		OrderDate:      order.OrderDate,
		DeliveryDate:   order.DeliveryDate,
		Status:         string(order.Status),
		Quantity:       order.Quantity,
		IsSet:          order.IsSet,
		SetMultiplier:  order.SetMultiplier,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}
