package models

import "time"

// Fraction is a housing or commercial unit within a condominium.
// Permillage is the unit's share of the building, in thousandths,
// and drives periodic fee generation.
type Fraction struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	CondominiumID string     `json:"condominium_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Label         string     `json:"label" gorm:"not null" validate:"required"`
	OwnerName     string     `json:"owner_name" gorm:"not null" validate:"required"`
	Permillage    int64      `json:"permillage" gorm:"not null" validate:"required,gt=0"`
	IsActive      bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Condominium *Condominium `json:"condominium,omitempty" gorm:"foreignKey:CondominiumID;references:ID"`
}
