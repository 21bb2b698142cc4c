package cycle

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"flight-training-backend/models/training"
	"flight-training-backend/services/signoff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu          sync.Mutex
	assignments map[uint]*training.UserModule
	failIDs     map[uint]error
	blockIDs    map[uint]chan struct{}
}

func newFakeStore(assignments ...*training.UserModule) *fakeStore {
	s := &fakeStore{
		assignments: map[uint]*training.UserModule{},
		failIDs:     map[uint]error{},
		blockIDs:    map[uint]chan struct{}{},
	}
	for _, a := range assignments {
		s.assignments[a.ID] = a
	}
	return s
}

func (s *fakeStore) LoadAssignmentsForTrainee(ctx context.Context, traineeID uint) ([]training.UserModule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []training.UserModule
	for _, a := range s.assignments {
		if a.UserID == traineeID {
			list = append(list, *a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *fakeStore) UpdateActiveCycle(ctx context.Context, assignmentID uint, active bool) error {
	s.mu.Lock()
	block := s.blockIDs[assignmentID]
	s.mu.Unlock()
	if block != nil {
		<-block
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failIDs[assignmentID]; err != nil {
		return err
	}
	a, ok := s.assignments[assignmentID]
	if !ok {
		return signoff.ErrNotFound
	}
	a.ActiveCycle = active
	return nil
}

func (s *fakeStore) DistinctTrainingYears(ctx context.Context, traineeID uint) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[int]bool{}
	var years []int
	for _, a := range s.assignments {
		if a.UserID == traineeID && !seen[a.TrainingYear] {
			seen[a.TrainingYear] = true
			years = append(years, a.TrainingYear)
		}
	}
	return years, nil
}

func (s *fakeStore) active(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignments[id].ActiveCycle
}

var coordinator = signoff.Actor{UserID: 1, Role: training.RoleCoordinator}

func assignment(id, traineeID uint, year int, active bool) *training.UserModule {
	return &training.UserModule{ID: id, UserID: traineeID, TrainingYear: year, ActiveCycle: active}
}

func TestArchiveRequiresCoordinator(t *testing.T) {
	m := NewManager(newFakeStore())
	for _, role := range []training.Role{training.RoleTrainer, training.RoleTrainee} {
		_, err := m.Archive(context.Background(), 5, 2024, signoff.Actor{UserID: 2, Role: role})
		assert.ErrorIs(t, err, signoff.ErrNotAuthorized)
		_, err = m.Restore(context.Background(), 5, 2024, signoff.Actor{UserID: 2, Role: role})
		assert.ErrorIs(t, err, signoff.ErrNotAuthorized)
	}
}

func TestArchiveIsolatedByYear(t *testing.T) {
	store := newFakeStore(
		assignment(1, 5, 2023, true),
		assignment(2, 5, 2024, true),
		assignment(3, 5, 2024, true),
	)
	m := NewManager(store)

	res, err := m.Archive(context.Background(), 5, 2024, coordinator)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, res.Succeeded)
	assert.Empty(t, res.Failed)

	assert.True(t, store.active(1), "назначение 2023 года не должно меняться")
	assert.False(t, store.active(2))
	assert.False(t, store.active(3))
}

func TestArchiveIdempotent(t *testing.T) {
	store := newFakeStore(
		assignment(1, 5, 2024, true),
		assignment(2, 5, 2024, true),
	)
	m := NewManager(store)

	first, err := m.Archive(context.Background(), 5, 2024, coordinator)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, first.Succeeded)

	// Повторный вызов — то же конечное состояние, и записи снова в
	// Succeeded как no-op, а не ошибка.
	second, err := m.Archive(context.Background(), 5, 2024, coordinator)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, second.Succeeded)
	assert.Empty(t, second.Failed)
	assert.False(t, store.active(1))
	assert.False(t, store.active(2))
}

func TestArchiveAllYears(t *testing.T) {
	store := newFakeStore(
		assignment(1, 5, 2023, true),
		assignment(2, 5, 2024, true),
		assignment(3, 6, 2024, true), // другой обучаемый
	)
	m := NewManager(store)

	res, err := m.Archive(context.Background(), 5, AllYears, coordinator)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, res.Succeeded)
	assert.True(t, store.active(3), "чужие назначения не трогаем")
}

func TestArchivePartialFailure(t *testing.T) {
	store := newFakeStore(
		assignment(1, 5, 2024, true),
		assignment(2, 5, 2024, true),
		assignment(3, 5, 2024, true),
	)
	store.failIDs[2] = errors.New("connection reset")
	m := NewManager(store)

	res, err := m.Archive(context.Background(), 5, 2024, coordinator)
	require.NoError(t, err, "частичный сбой — это данные, а не ошибка операции")
	assert.Equal(t, []uint{1, 3}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, uint(2), res.Failed[0].AssignmentID)
	assert.Contains(t, res.Failed[0].Reason, "connection reset")

	// Повтор после устранения сбоя: успевшие раньше — no-op успех,
	// отказавшая запись переводится.
	delete(store.failIDs, 2)
	retry, err := m.Archive(context.Background(), 5, 2024, coordinator)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, retry.Succeeded)
	assert.Empty(t, retry.Failed)
}

func TestRestore(t *testing.T) {
	store := newFakeStore(
		assignment(1, 5, 2024, false),
		assignment(2, 5, 2024, true),
	)
	m := NewManager(store)

	res, err := m.Restore(context.Background(), 5, 2024, coordinator)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, res.Succeeded)
	assert.True(t, store.active(1))
	assert.True(t, store.active(2))
}

func TestArchiveDeadlineReportsUnconfirmed(t *testing.T) {
	store := newFakeStore(
		assignment(1, 5, 2024, true),
		assignment(2, 5, 2024, true),
	)
	block := make(chan struct{})
	store.blockIDs[2] = block
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	res, err := NewManager(store).Archive(ctx, 5, 2024, coordinator)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, uint(2), res.Failed[0].AssignmentID)
	assert.Contains(t, res.Failed[0].Reason, "not confirmed")
}

func TestYearsSortedDescending(t *testing.T) {
	store := newFakeStore(
		assignment(1, 5, 2022, false),
		assignment(2, 5, 2024, true),
		assignment(3, 5, 2023, false),
		assignment(4, 5, 2024, true),
	)
	years, err := NewManager(store).Years(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023, 2022}, years)
}

func TestIncluded(t *testing.T) {
	active2024 := assignment(1, 5, 2024, true)
	archived2023 := assignment(2, 5, 2023, false)

	assert.True(t, Included(active2024, 2024, true))
	assert.True(t, Included(active2024, AllYears, true))
	assert.False(t, Included(active2024, 2023, true))
	assert.False(t, Included(active2024, 2024, false))

	assert.True(t, Included(archived2023, 2023, false))
	assert.True(t, Included(archived2023, AllYears, false))
	assert.False(t, Included(archived2023, 2023, true))
}
