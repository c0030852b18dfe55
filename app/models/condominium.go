package models

import "time"

// Condominium is the tenant every ledger entity belongs to.
type Condominium struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"not null" validate:"required"`
	Address   *string    `json:"address,omitempty" gorm:"type:text"`
	IsActive  bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
