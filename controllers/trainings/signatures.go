package trainings

import (
	"encoding/json"
	"net/http"
	"strconv"

	"flight-training-backend/controllers/authentication"
	"flight-training-backend/models/training"

	"github.com/gorilla/mux"
)

// Подпись за роль на подмодуле. Кто за какую роль может подписываться,
// решает services/signoff; здесь только разбор запроса.
func SignUnit(w http.ResponseWriter, r *http.Request) {
	actor, ok := authentication.CurrentActor(r)
	if !ok {
		http.Error(w, "Недостаточно прав", http.StatusForbidden)
		return
	}

	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Неверный формат данных", http.StatusBadRequest)
		return
	}

	role, err := training.ParseRole(input.Role)
	if err != nil {
		http.Error(w, "Неизвестная роль", http.StatusBadRequest)
		return
	}

	sig, status, err := ledger().Add(r.Context(), uint(id), role, actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"signature": sig,
		"complete":  status.Complete,
	})
}

// Снятие подписи. Разрешено только автору подписи.
func UnsignUnit(w http.ResponseWriter, r *http.Request) {
	actor, ok := authentication.CurrentActor(r)
	if !ok {
		http.Error(w, "Недостаточно прав", http.StatusForbidden)
		return
	}

	params := mux.Vars(r)
	id, _ := strconv.Atoi(params["id"])

	status, err := ledger().Remove(r.Context(), uint(id), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"complete": status.Complete})
}
