package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Equipment struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Category    string              `bson:"category,omitempty" json:"category,omitempty"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Quantity    int                 `bson:"quantity" json:"quantity"`
	MinStock    int                 `bson:"minStock" json:"minStock"`
	UnitPrice   float64             `bson:"unitPrice" json:"unitPrice"`
	Supplier    string              `bson:"supplier,omitempty" json:"supplier,omitempty"`
	ClinicID    *primitive.ObjectID `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	IsActive    bool                `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// LowStock reports whether on-hand quantity is at or below the threshold.
func (e *Equipment) LowStock() bool {
	return e.IsActive && e.Quantity <= e.MinStock
}

type CreateEquipmentRequest struct {
	Name        string   `json:"name" binding:"required,max=120"`
	Category    string   `json:"category" binding:"omitempty,max=80"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity" binding:"required,gte=0"`
	MinStock    *int     `json:"minStock" binding:"required,gte=0"`
	UnitPrice   *float64 `json:"unitPrice" binding:"required,gte=0"`
	Supplier    string   `json:"supplier"`
	ClinicID    string   `json:"clinicId" binding:"omitempty,mongodb"`
}

type UpdateEquipmentRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=120"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,max=80"`
	Description *string  `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty" binding:"omitempty,gte=0"`
	MinStock    *int     `json:"minStock,omitempty" binding:"omitempty,gte=0"`
	UnitPrice   *float64 `json:"unitPrice,omitempty" binding:"omitempty,gte=0"`
	Supplier    *string  `json:"supplier,omitempty"`
	ClinicID    *string  `json:"clinicId,omitempty" binding:"omitempty,mongodb"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// EquipmentFilter narrows equipment listings.
type EquipmentFilter struct {
	ClinicID   *primitive.ObjectID
	ActiveOnly bool
}
