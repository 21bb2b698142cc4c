package trainings

import (
	"encoding/json"
	"net/http"
	"strconv"

	"flight-training-backend/services/completion"

	"github.com/gorilla/mux"
)

type traineeOverview struct {
	TraineeID        uint             `json:"trainee_id"`
	Assignments      []assignmentView `json:"assignments"`
	TotalUnits       int              `json:"total_units"`
	CompletedUnits   int              `json:"completed_units"`
	ModulesCompleted int              `json:"modules_completed"`
	ModulesStarted   int              `json:"modules_started"`
}

// Сводка по обучаемому. Готовность считается теми же функциями
// services/completion, что и на карточке назначения — цифры не расходятся.
func TraineeStats(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])

	assignments, err := repo().LoadAssignmentsForTrainee(r.Context(), uint(id))
	if err != nil {
		http.Error(w, "Ошибка при получении назначений", http.StatusInternalServerError)
		return
	}

	overview := traineeOverview{TraineeID: uint(id), Assignments: []assignmentView{}}
	for _, a := range assignments {
		v := viewOf(a)
		overview.Assignments = append(overview.Assignments, v)
		overview.TotalUnits += v.Summary.Total
		overview.CompletedUnits += v.Summary.Completed
		switch v.Status {
		case completion.StatusCompleted:
			overview.ModulesCompleted++
		case completion.StatusInProgress:
			overview.ModulesStarted++
		}
	}
	json.NewEncoder(w).Encode(overview)
}
