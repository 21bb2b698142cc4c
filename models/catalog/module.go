package catalog

import "time"

// Справочник учебных программ: модуль и его подмодули.
// Это статические данные, назначения обучаемым хранятся отдельно (models/training).

type TrainingModule struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"size:50;not null;unique" json:"code"` // Код программы (например, CCT-A320)
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Submodules  []Submodule `gorm:"foreignKey:ModuleID" json:"submodules"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Submodule struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ModuleID          uint      `gorm:"not null;index" json:"module_id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Order             int       `gorm:"not null" json:"order"`
	RequiresPractical bool      `gorm:"not null;default:false" json:"requires_practical"` // Требуется ли практическая отработка
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
