package trainings

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
	"flight-training-backend/models/users"
	"flight-training-backend/services/completion"
	"flight-training-backend/services/cycle"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type assignmentView struct {
	Assignment training.UserModule `json:"assignment"`
	Summary    completion.Summary  `json:"summary"`
	Status     completion.Status   `json:"status"`
}

func viewOf(a training.UserModule) assignmentView {
	return assignmentView{
		Assignment: a,
		Summary:    completion.Aggregate(&a),
		Status:     completion.Classify(&a),
	}
}

type createAssignmentInput struct {
	UserID       uint   `json:"user_id"`
	ModuleID     uint   `json:"module_id"`
	TrainingYear int    `json:"training_year"`
	Notes        string `json:"notes"`
}

// Назначение модуля обучаемому на учебный год. Только координатор.
// На каждый подмодуль программы сразу заводится запись прогресса.
func CreateAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := authentication.CurrentActor(r)
	if !ok || actor.Role != training.RoleCoordinator {
		http.Error(w, "Требуется роль координатора", http.StatusForbidden)
		return
	}

	var input createAssignmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Неверный формат данных", http.StatusBadRequest)
		return
	}

	if input.UserID == 0 || input.ModuleID == 0 || input.TrainingYear == 0 {
		http.Error(w, "Необходимо заполнить все обязательные поля", http.StatusBadRequest)
		return
	}

	trainee, err := users.GetUserByID(input.UserID)
	if err != nil {
		http.Error(w, "Обучаемый не найден", http.StatusNotFound)
		return
	}
	if trainee.Role != string(training.RoleTrainee) {
		http.Error(w, "Модуль назначается только обучаемому", http.StatusBadRequest)
		return
	}

	var module catalog.TrainingModule
	if err := config.DB.Preload("Submodules").First(&module, input.ModuleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Модуль не найден", http.StatusNotFound)
			return
		}
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	assignment := training.UserModule{
		UserID:       input.UserID,
		ModuleID:     module.ID,
		Notes:        input.Notes,
		TrainingYear: input.TrainingYear,
		ActiveCycle:  true,
	}
	for _, sub := range module.Submodules {
		assignment.Progress = append(assignment.Progress, training.SubmoduleProgress{SubmoduleID: sub.ID})
	}

	if err := config.DB.Create(&assignment).Error; err != nil {
		log.Printf("Ошибка при создании назначения: %v", err)
		http.Error(w, "Ошибка при создании назначения", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(assignment)
}

// Список назначений обучаемого с фильтром по году и циклу.
// year=0 (или без параметра) — все годы; active по умолчанию true.
func ListAssignments(w http.ResponseWriter, r *http.Request) {
	traineeID, err := strconv.Atoi(r.URL.Query().Get("trainee"))
	if err != nil || traineeID <= 0 {
		http.Error(w, "Не указан обучаемый", http.StatusBadRequest)
		return
	}

	year := cycle.AllYears
	if y := r.URL.Query().Get("year"); y != "" {
		year, err = strconv.Atoi(y)
		if err != nil {
			http.Error(w, "Неверный год", http.StatusBadRequest)
			return
		}
	}

	showActive := true
	if v := r.URL.Query().Get("active"); v != "" {
		showActive, err = strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "Неверный фильтр цикла", http.StatusBadRequest)
			return
		}
	}

	assignments, err := repo().LoadAssignmentsForTrainee(r.Context(), uint(traineeID))
	if err != nil {
		http.Error(w, "Ошибка при получении назначений", http.StatusInternalServerError)
		return
	}

	views := []assignmentView{}
	for _, a := range assignments {
		if cycle.Included(&a, year, showActive) {
			views = append(views, viewOf(a))
		}
	}
	json.NewEncoder(w).Encode(views)
}

// Назначение по ID вместе со сводкой готовности
func GetAssignment(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])

	assignment, err := repo().LoadAssignment(r.Context(), uint(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(viewOf(*assignment))
}

// Обновление заметок. Год и цикл через этот обработчик не меняются:
// год фиксирован, цикл переводится только массовой операцией.
func UpdateNotes(w http.ResponseWriter, r *http.Request) {
	actor, ok := authentication.CurrentActor(r)
	if !ok || actor.Role == training.RoleTrainee {
		http.Error(w, "Недостаточно прав", http.StatusForbidden)
		return
	}

	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])

	var assignment training.UserModule
	if err := config.DB.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Назначение не найдено", http.StatusNotFound)
			return
		}
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Неверный формат данных", http.StatusBadRequest)
		return
	}

	if err := config.DB.Model(&assignment).Update("notes", input.Notes).Error; err != nil {
		http.Error(w, "Ошибка при сохранении", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(assignment)
}

// Удаление назначения (мягкое). Только координатор.
func DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := authentication.CurrentActor(r)
	if !ok || actor.Role != training.RoleCoordinator {
		http.Error(w, "Требуется роль координатора", http.StatusForbidden)
		return
	}

	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])

	var assignment training.UserModule
	if err := config.DB.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Назначение не найдено", http.StatusNotFound)
			return
		}
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	config.DB.Delete(&assignment)
	json.NewEncoder(w).Encode(map[string]string{"message": "Назначение удалено"})
}
