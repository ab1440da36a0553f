// Package historyrepo persists delivered orders with GORM. An order is stored
// in order_history with its cart lines in order_history_items.
package historyrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of order_history.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID   string    `gorm:"type:varchar(64);not null"`
	RestaurantName string    `gorm:"type:varchar(255);not null"`
	TotalRupees    int64     `gorm:"type:bigint;not null"`
	PaymentMethod  string    `gorm:"type:varchar(8);not null"`
	UPIID          *string   `gorm:"column:upi_id;type:varchar(320)"`
	Status         int       `gorm:"type:smallint;not null"`
	DriverName     *string   `gorm:"type:varchar(255)"`
	DriverPhone    *string   `gorm:"type:varchar(32)"`
	PlacedAt       time.Time `gorm:"not null;index"`
	RecordedAt     time.Time `gorm:"not null;index"`
	Items          []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "order_history"
}

// ItemDTO is one cart line; Position keeps the cart order.
type ItemDTO struct {
	ID          uint      `gorm:"primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"type:int;not null"`
	MenuItemID  string    `gorm:"type:varchar(64);not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	PriceRupees int64     `gorm:"type:bigint;not null"`
	Quantity    int       `gorm:"type:int;not null"`
}

func (ItemDTO) TableName() string {
	return "order_history_items"
}

func fromDomain(o *order.Order, recordedAt time.Time) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:     orderID,
			Position:    i,
			MenuItemID:  item.MenuItemID(),
			Name:        item.Name(),
			PriceRupees: item.Price().Rupees(),
			Quantity:    item.Quantity(),
		})
	}

	dto := OrderDTO{
		ID:             orderID,
		RestaurantID:   o.RestaurantID(),
		RestaurantName: o.RestaurantName(),
		TotalRupees:    o.Total().Rupees(),
		PaymentMethod:  string(o.Payment().Method()),
		Status:         int(o.Status()),
		PlacedAt:       o.PlacedAt().UTC(),
		RecordedAt:     recordedAt.UTC(),
		Items:          items,
	}
	if upiID := o.Payment().UPIID(); upiID != "" {
		dto.UPIID = &upiID
	}
	if d := o.Driver(); d != nil {
		name, phone := d.Name(), d.Phone()
		dto.DriverName = &name
		dto.DriverPhone = &phone
	}
	return dto
}

// toDomain rebuilds the order with RestoreOrder. The stored total is not
// trusted; it is recomputed from the items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.PriceRupees)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.MenuItemID, itemDTO.Name, price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var upiID string
	if dto.UPIID != nil {
		upiID = *dto.UPIID
	}
	payment, err := order.NewPayment(order.PaymentMethod(dto.PaymentMethod), upiID)
	if err != nil {
		return nil, err
	}

	var driver *order.Driver
	if dto.DriverName != nil {
		var phone string
		if dto.DriverPhone != nil {
			phone = *dto.DriverPhone
		}
		d, driverErr := order.NewDriver(*dto.DriverName, phone)
		if driverErr != nil {
			return nil, driverErr
		}
		driver = &d
	}

	return order.RestoreOrder(id, dto.RestaurantID, dto.RestaurantName, items, payment,
		dto.PlacedAt, order.Status(dto.Status), driver)
}
