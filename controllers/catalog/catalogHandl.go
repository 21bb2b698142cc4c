package catalog

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"flight-training-backend/config"
	"flight-training-backend/controllers/authentication"
	"flight-training-backend/models/catalog"
	"flight-training-backend/models/training"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Получение всех учебных модулей со списком подмодулей
func ListModules(w http.ResponseWriter, r *http.Request) {
	var modules []catalog.TrainingModule
	if err := config.DB.Preload("Submodules").Find(&modules).Error; err != nil {
		http.Error(w, "Ошибка при получении модулей", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(modules)
}

// Получение модуля по ID
func GetModuleByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])
	var module catalog.TrainingModule
	if err := config.DB.Preload("Submodules").First(&module, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Модуль не найден", http.StatusNotFound)
			return
		}
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(module)
}

// Создание модуля вместе с подмодулями. Только координатор.
func CreateModule(w http.ResponseWriter, r *http.Request) {
	actor, ok := authentication.CurrentActor(r)
	if !ok || actor.Role != training.RoleCoordinator {
		http.Error(w, "Требуется роль координатора", http.StatusForbidden)
		return
	}

	var module catalog.TrainingModule
	if err := json.NewDecoder(r.Body).Decode(&module); err != nil {
		log.Printf("Ошибка при декодировании тела запроса: %v", err)
		http.Error(w, "Неверный формат данных", http.StatusBadRequest)
		return
	}

	if module.Code == "" || module.Title == "" {
		http.Error(w, "Необходимо заполнить все обязательные поля", http.StatusBadRequest)
		return
	}

	if err := config.DB.Create(&module).Error; err != nil {
		log.Printf("Ошибка при сохранении модуля: %v", err)
		http.Error(w, "Ошибка при сохранении модуля", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(module)
}
