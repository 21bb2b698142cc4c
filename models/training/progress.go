package training

import (
	"time"

	"flight-training-backend/models/catalog"
)

// SubmoduleProgress — прогресс одного обучаемого по одному подмодулю программы.
// Подмодуль зачтен, когда отмечена стажировка (OJT), при необходимости практика,
// и собраны подписи всех трех ролей (services/completion).
type SubmoduleProgress struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	UserModuleID       uint              `gorm:"not null;index" json:"user_module_id"`
	UserModule         UserModule        `gorm:"foreignKey:UserModuleID" json:"-"`
	SubmoduleID        uint              `gorm:"not null;index" json:"submodule_id"`
	Submodule          catalog.Submodule `gorm:"foreignKey:SubmoduleID" json:"submodule"`
	OJTCompleted       bool              `gorm:"not null;default:false" json:"ojt_completed"`       // Стажировка на рабочем месте
	PracticalCompleted bool              `gorm:"not null;default:false" json:"practical_completed"` // Практическая отработка
	Signatures         []Signature       `gorm:"foreignKey:ProgressID" json:"signatures"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// HasSignatureForRole — есть ли на подмодуле подпись за указанную роль.
func (p *SubmoduleProgress) HasSignatureForRole(role Role) bool {
	for _, s := range p.Signatures {
		if s.Role == role {
			return true
		}
	}
	return false
}

// HasSignatureBy — держит ли пользователь хоть одну подпись на этом подмодуле.
func (p *SubmoduleProgress) HasSignatureBy(userID uint) bool {
	for _, s := range p.Signatures {
		if s.SignerID == userID {
			return true
		}
	}
	return false
}
