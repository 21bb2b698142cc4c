package trainings

import (
	"errors"
	"net/http"

	"flight-training-backend/config"
	"flight-training-backend/repository"
	"flight-training-backend/services/cycle"
	"flight-training-backend/services/signoff"
)

func repo() *repository.AssignmentRepository {
	return repository.New(config.DB)
}

func ledger() *signoff.Ledger {
	return signoff.NewLedger(repo())
}

func manager() *cycle.Manager {
	return cycle.NewManager(repo())
}

// Перевод типизированных ошибок сервисов в HTTP-статусы. Отказ в правах и
// "уже подписано" различаются: пользователю нужны разные действия.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, signoff.ErrNotFound):
		http.Error(w, "Не найдено", http.StatusNotFound)
	case errors.Is(err, signoff.ErrAlreadySigned):
		http.Error(w, "За эту роль уже подписались", http.StatusConflict)
	case errors.Is(err, signoff.ErrNotAuthorized):
		http.Error(w, "Недостаточно прав", http.StatusForbidden)
	default:
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
	}
}
