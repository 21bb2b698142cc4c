package trainings

import (
	"encoding/json"
	"net/http"
	"strconv"

	"flight-training-backend/controllers/authentication"
)

type cycleInput struct {
	TraineeID uint `json:"trainee_id"`
	Year      int  `json:"year"` // 0 — все годы
}

// Архивация учебного цикла обучаемого. Только координатор.
// Частичные сбои возвращаются в теле ответа, операция не прерывается.
func ArchiveCycle(w http.ResponseWriter, r *http.Request) {
	runCycleTransition(w, r, false)
}

// Восстановление цикла из архива. Только координатор.
func RestoreCycle(w http.ResponseWriter, r *http.Request) {
	runCycleTransition(w, r, true)
}

func runCycleTransition(w http.ResponseWriter, r *http.Request, restore bool) {
	actor, ok := authentication.CurrentActor(r)
	if !ok {
		http.Error(w, "Недостаточно прав", http.StatusForbidden)
		return
	}

	var input cycleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Неверный формат данных", http.StatusBadRequest)
		return
	}
	if input.TraineeID == 0 {
		http.Error(w, "Не указан обучаемый", http.StatusBadRequest)
		return
	}

	m := manager()
	run := m.Archive
	if restore {
		run = m.Restore
	}

	result, err := run(r.Context(), input.TraineeID, input.Year, actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(result)
}

// Учебные годы обучаемого, по убыванию
func ListYears(w http.ResponseWriter, r *http.Request) {
	traineeID, err := strconv.Atoi(r.URL.Query().Get("trainee"))
	if err != nil || traineeID <= 0 {
		http.Error(w, "Не указан обучаемый", http.StatusBadRequest)
		return
	}

	years, err := manager().Years(r.Context(), uint(traineeID))
	if err != nil {
		http.Error(w, "Ошибка при получении лет", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string][]int{"years": years})
}
