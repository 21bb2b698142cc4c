// Package cycle — массовый перевод назначений между активным и архивным
// учебным циклом и фильтрация по циклу на чтении.
package cycle

import (
	"context"
	"sort"

	"flight-training-backend/models/training"
	"flight-training-backend/services/signoff"
)

// AllYears — значение фильтра "все годы". Год 0 учебным годом не бывает.
const AllYears = 0

type Store interface {
	LoadAssignmentsForTrainee(ctx context.Context, traineeID uint) ([]training.UserModule, error)
	UpdateActiveCycle(ctx context.Context, assignmentID uint, active bool) error
	DistinctTrainingYears(ctx context.Context, traineeID uint) ([]int, error)
}

type ItemFailure struct {
	AssignmentID uint   `json:"assignment_id"`
	Reason       string `json:"reason"`
}

// BulkResult — итог массового перевода. Частичный сбой возвращается как
// данные, а не как ошибка: операция best-effort по независимым записям.
type BulkResult struct {
	Succeeded []uint        `json:"succeeded"`
	Failed    []ItemFailure `json:"failed"`
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Archive переводит активные назначения указанного года (или всех лет) в архив.
// Только координатор.
func (m *Manager) Archive(ctx context.Context, traineeID uint, year int, actor signoff.Actor) (*BulkResult, error) {
	return m.transition(ctx, traineeID, year, false, actor)
}

// Restore возвращает архивные назначения в активный цикл. Только координатор.
func (m *Manager) Restore(ctx context.Context, traineeID uint, year int, actor signoff.Actor) (*BulkResult, error) {
	return m.transition(ctx, traineeID, year, true, actor)
}

type outcome struct {
	id  uint
	err error
}

func (m *Manager) transition(ctx context.Context, traineeID uint, year int, toActive bool, actor signoff.Actor) (*BulkResult, error) {
	if actor.Role != training.RoleCoordinator {
		return nil, signoff.ErrNotAuthorized
	}

	assignments, err := m.store.LoadAssignmentsForTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	res := &BulkResult{Succeeded: []uint{}, Failed: []ItemFailure{}}
	var pending []uint
	for _, a := range assignments {
		if year != AllYears && a.TrainingYear != year {
			continue
		}
		if a.ActiveCycle == toActive {
			// Повтор после частичного сбоя: уже переведенные считаются
			// успешными, это не ошибка.
			res.Succeeded = append(res.Succeeded, a.ID)
			continue
		}
		pending = append(pending, a.ID)
	}

	// Обновления независимы, выполняем параллельно и собираем все исходы.
	// errgroup не подходит: первый сбой не должен отменять остальные.
	ch := make(chan outcome, len(pending))
	for _, id := range pending {
		go func(id uint) {
			ch <- outcome{id: id, err: m.store.UpdateActiveCycle(ctx, id, toActive)}
		}(id)
	}

	confirmed := make(map[uint]bool, len(pending))
	for i := 0; i < len(pending); i++ {
		select {
		case out := <-ch:
			confirmed[out.id] = true
			if out.err != nil {
				res.Failed = append(res.Failed, ItemFailure{AssignmentID: out.id, Reason: out.err.Error()})
			} else {
				res.Succeeded = append(res.Succeeded, out.id)
			}
		case <-ctx.Done():
			// Дедлайн вышел: запущенные обновления доработают сами, но
			// вызывающему нужно знать, какие не подтверждены.
			for _, id := range pending {
				if !confirmed[id] {
					res.Failed = append(res.Failed, ItemFailure{AssignmentID: id, Reason: "update not confirmed: " + ctx.Err().Error()})
				}
			}
			sortResult(res)
			return res, nil
		}
	}

	sortResult(res)
	return res, nil
}

// Included — попадает ли назначение в выборку по году и циклу.
func Included(a *training.UserModule, year int, showActive bool) bool {
	return (year == AllYears || a.TrainingYear == year) && a.ActiveCycle == showActive
}

// Years — учебные годы обучаемого, по убыванию.
func (m *Manager) Years(ctx context.Context, traineeID uint) ([]int, error) {
	years, err := m.store.DistinctTrainingYears(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func sortResult(res *BulkResult) {
	sort.Slice(res.Succeeded, func(i, j int) bool { return res.Succeeded[i] < res.Succeeded[j] })
	sort.Slice(res.Failed, func(i, j int) bool { return res.Failed[i].AssignmentID < res.Failed[j].AssignmentID })
}
