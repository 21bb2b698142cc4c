package training

import (
	"time"

	"flight-training-backend/models/catalog"

	"gorm.io/gorm"
)

// UserModule — назначение учебного модуля обучаемому на учебный год.
// TrainingYear задается при создании и не меняется; ActiveCycle переключается
// только массовой архивацией/восстановлением цикла (services/cycle).
type UserModule struct {
	ID           uint                   `gorm:"primaryKey" json:"id"`
	UserID       uint                   `gorm:"not null;index" json:"user_id"` // Обучаемый
	ModuleID     uint                   `gorm:"not null;index" json:"module_id"`
	Module       catalog.TrainingModule `gorm:"foreignKey:ModuleID" json:"module"`
	Notes        string                 `gorm:"type:text" json:"notes"`
	TrainingYear int                    `gorm:"not null;index" json:"training_year"`
	ActiveCycle  bool                   `gorm:"not null;default:true" json:"active_cycle"`
	Progress     []SubmoduleProgress    `gorm:"foreignKey:UserModuleID" json:"progress"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	DeletedAt    gorm.DeletedAt         `gorm:"index" json:"-"`
}
