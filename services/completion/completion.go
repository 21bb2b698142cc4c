// Package completion — единственное место, где определено, что считается
// зачтенным. Все экраны и отчеты считают готовность только через эти функции.
package completion

import (
	"math"

	"flight-training-backend/models/training"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Summary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// IsUnitComplete — зачтен ли подмодуль: отмечена стажировка, собраны подписи
// всех трех ролей и, если подмодуль требует практики, она отработана.
// Трех любых подписей недостаточно — нужны именно три разные роли; дубль
// подписи за одну роль (если он как-то попал в базу) считается один раз.
func IsUnitComplete(unit *training.SubmoduleProgress) bool {
	if !unit.OJTCompleted {
		return false
	}
	if unit.Submodule.RequiresPractical && !unit.PracticalCompleted {
		return false
	}
	for _, role := range training.SigningRoles {
		if !unit.HasSignatureForRole(role) {
			return false
		}
	}
	return true
}

// Aggregate — сводка по назначению. Ноль подмодулей дает нули, а не ошибку.
func Aggregate(assignment *training.UserModule) Summary {
	s := Summary{Total: len(assignment.Progress)}
	for i := range assignment.Progress {
		if IsUnitComplete(&assignment.Progress[i]) {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percentage = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}

// Classify — статус назначения по его сводке.
func Classify(assignment *training.UserModule) Status {
	return ClassifySummary(Aggregate(assignment))
}

func ClassifySummary(s Summary) Status {
	switch {
	case s.Total == 0 || s.Completed == 0:
		return StatusNotStarted
	case s.Completed == s.Total:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}
