// Package orderrepo persists the order aggregate: the order row, its line
// items and its status history.
package orderrepo

import (
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number             string     `gorm:"type:varchar(12);not null"`
	SchoolID           uuid.UUID  `gorm:"type:uuid;not null"`
	Status             string     `gorm:"type:varchar(20);not null"`
	DeliveryType       string     `gorm:"type:varchar(20);not null"`
	Responsible        string     `gorm:"not null"`
	Driver             string     `gorm:"not null"`
	Vehicle            string     `gorm:"not null"`
	Notes              string     `gorm:"not null"`
	ExpectedDate       time.Time  `gorm:"type:date;not null"`
	ActualDeliveryDate *time.Time `gorm:"type:date"`
	CreatedBy          string     `gorm:"not null"`
	CreatedAt          time.Time  `gorm:"not null"`
	CreatedOn          time.Time  `gorm:"type:date;not null"`

	Items   []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is a row of the order_items table. Position keeps the insertion
// order of the lines.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Requested int       `gorm:"not null"`
	Delivered int       `gorm:"not null"`
	Note      string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO is a row of the order_status_history table. PreviousStatus is
// empty for the entry written when the order was created.
type HistoryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null"`
	PreviousStatus string    `gorm:"type:varchar(20);not null"`
	NewStatus      string    `gorm:"type:varchar(20);not null"`
	Actor          string    `gorm:"not null"`
	Note           string    `gorm:"not null"`
	OccurredAt     time.Time `gorm:"not null"`
	Position       int       `gorm:"not null"`
}

func (HistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	details := aggregate.Details()
	dto := OrderDTO{
		ID:           aggregate.ID().Value(),
		Number:       aggregate.Number().String(),
		SchoolID:     aggregate.SchoolID().Value(),
		Status:       aggregate.Status().String(),
		DeliveryType: details.DeliveryType.String(),
		Responsible:  details.Responsible,
		Driver:       details.Driver,
		Vehicle:      details.Vehicle,
		Notes:        details.Notes,
		ExpectedDate: aggregate.ExpectedDate().Time(),
		CreatedBy:    aggregate.CreatedBy(),
		CreatedAt:    aggregate.CreatedAt(),
		CreatedOn:    kernel.DateOf(aggregate.CreatedAt()).Time(),
	}
	if delivered := aggregate.ActualDeliveryDate(); !delivered.IsZero() {
		t := delivered.Time()
		dto.ActualDeliveryDate = &t
	}

	items := aggregate.Items()
	dto.Items = make([]ItemDTO, 0, len(items))
	for i, item := range items {
		dto.Items = append(dto.Items, ItemDTO{
			ID:        item.ID().Value(),
			OrderID:   dto.ID,
			ProductID: item.ProductID().Value(),
			Requested: item.Requested(),
			Delivered: item.Delivered(),
			Note:      item.Note(),
			Position:  i,
		})
	}

	history := aggregate.History()
	dto.History = make([]HistoryDTO, 0, len(history))
	for i, entry := range history {
		dto.History = append(dto.History, HistoryDTO{
			ID:             entry.ID().Value(),
			OrderID:        dto.ID,
			PreviousStatus: entry.Previous().String(),
			NewStatus:      entry.Next().String(),
			Actor:          entry.Actor(),
			Note:           entry.Note(),
			OccurredAt:     entry.OccurredAt(),
			Position:       i,
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	schoolID, err := kernel.UUIDFromGoogle(dto.SchoolID)
	if err != nil {
		return nil, err
	}
	number, err := order.ParseNumber(dto.Number)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	var actual kernel.Date
	if dto.ActualDeliveryDate != nil {
		actual = kernel.DateOf(*dto.ActualDeliveryDate)
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, historyDTO := range dto.History {
		entry, entryErr := historyToDomain(historyDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.State{
		ID:       id,
		Number:   number,
		SchoolID: schoolID,
		Details: order.Details{
			DeliveryType: deliveryType,
			Responsible:  dto.Responsible,
			Driver:       dto.Driver,
			Vehicle:      dto.Vehicle,
			Notes:        dto.Notes,
		},
		Status:             status,
		ExpectedDate:       kernel.DateOf(dto.ExpectedDate),
		ActualDeliveryDate: actual,
		CreatedBy:          dto.CreatedBy,
		CreatedAt:          dto.CreatedAt,
	}, items, history)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(id, productID, dto.Requested, dto.Delivered, dto.Note)
}

func historyToDomain(dto HistoryDTO) (order.HistoryEntry, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	previous := order.Unknown
	if dto.PreviousStatus != "" {
		if previous, err = order.ParseStatus(dto.PreviousStatus); err != nil {
			return order.HistoryEntry{}, err
		}
	}
	next, err := order.ParseStatus(dto.NewStatus)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	return order.RestoreHistoryEntry(id, previous, next, dto.Actor, dto.Note, dto.OccurredAt)
}
