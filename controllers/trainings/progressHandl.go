package trainings

import (
	"encoding/json"
	"net/http"
	"strconv"

	"flight-training-backend/config"
	"flight-training-backend/controllers/authentication"
	"flight-training-backend/models/training"
	"flight-training-backend/services/completion"

	"github.com/gorilla/mux"
)

type progressView struct {
	Progress training.SubmoduleProgress `json:"progress"`
	Complete bool                       `json:"complete"`
}

// Прогресс по подмодулю вместе с признаком зачета
func GetProgress(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])

	unit, err := repo().LoadUnit(r.Context(), uint(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(progressView{Progress: *unit, Complete: completion.IsUnitComplete(unit)})
}

// Отметка о стажировке (OJT). Координатор или тренер.
func SetOJT(w http.ResponseWriter, r *http.Request) {
	setProgressFlag(w, r, "ojt_completed")
}

// Отметка о практической отработке. Координатор или тренер; только для
// подмодулей, где практика предусмотрена программой.
func SetPractical(w http.ResponseWriter, r *http.Request) {
	setProgressFlag(w, r, "practical_completed")
}

func setProgressFlag(w http.ResponseWriter, r *http.Request, column string) {
	actor, ok := authentication.CurrentActor(r)
	if !ok || actor.Role == training.RoleTrainee {
		http.Error(w, "Недостаточно прав", http.StatusForbidden)
		return
	}

	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])

	unit, err := repo().LoadUnit(r.Context(), uint(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if column == "practical_completed" && !unit.Submodule.RequiresPractical {
		http.Error(w, "Практическая отработка этим подмодулем не предусмотрена", http.StatusBadRequest)
		return
	}

	var input struct {
		Done bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Неверный формат данных", http.StatusBadRequest)
		return
	}

	if err := config.DB.Model(&training.SubmoduleProgress{}).Where("id = ?", unit.ID).Update(column, input.Done).Error; err != nil {
		http.Error(w, "Ошибка при сохранении", http.StatusInternalServerError)
		return
	}

	updated, err := repo().LoadUnit(r.Context(), unit.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(progressView{Progress: *updated, Complete: completion.IsUnitComplete(updated)})
}
