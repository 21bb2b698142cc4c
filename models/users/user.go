package users

import (
	"time"

	"flight-training-backend/config"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"unique;not null"`
	Password     string `json:"-"`                                    // Хэш пароля (не передается в JSON)
	Role         string `json:"role" gorm:"not null;default:trainee"` // Роль пользователя: coordinator, trainer или trainee
	Position     string `json:"position"`                             // Должность (например, бортпроводник-инструктор)
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Provider     string `json:"provider"` // Обычная авторизация или Google
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func GetUserByID(userID interface{}) (*User, error) {
	var user User
	result := config.DB.First(&user, userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
