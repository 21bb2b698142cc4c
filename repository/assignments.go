// Package repository — доступ к назначениям, прогрессу и подписям поверх GORM.
// Реализует контракты хранилища из services/signoff и services/cycle.
package repository

import (
	"context"
	"errors"

	"flight-training-backend/models/training"
	"flight-training-backend/services/signoff"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// LoadAssignment загружает назначение целиком: модуль, прогресс по подмодулям
// и подписи каждого подмодуля.
func (r *AssignmentRepository) LoadAssignment(ctx context.Context, id uint) (*training.UserModule, error) {
	var a training.UserModule
	err := r.db.WithContext(ctx).
		Preload("Module.Submodules").
		Preload("Progress.Submodule").
		Preload("Progress.Signatures").
		First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, signoff.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) LoadAssignmentsForTrainee(ctx context.Context, traineeID uint) ([]training.UserModule, error) {
	var list []training.UserModule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", traineeID).
		Preload("Module").
		Preload("Progress.Submodule").
		Preload("Progress.Signatures").
		Order("training_year DESC, id").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// LoadUnit загружает подмодуль с подписями, справочным подмодулем и
// родительским назначением (оно нужно проверке "свой/чужой подмодуль").
func (r *AssignmentRepository) LoadUnit(ctx context.Context, unitID uint) (*training.SubmoduleProgress, error) {
	var unit training.SubmoduleProgress
	err := r.db.WithContext(ctx).
		Preload("Submodule").
		Preload("Signatures").
		Preload("UserModule").
		First(&unit, unitID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, signoff.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// InsertSignatureIfAbsent вставляет подпись, если за роль еще не подписались.
// Гонка решается на уровне БД: вставка с ON CONFLICT DO NOTHING по уникальному
// индексу (progress_id, role); из двух одновременных запросов проходит один.
func (r *AssignmentRepository) InsertSignatureIfAbsent(ctx context.Context, sig *training.Signature) error {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "progress_id"}, {Name: "role"}},
		DoNothing: true,
	}).Create(sig)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return signoff.ErrAlreadySigned
	}
	return nil
}

func (r *AssignmentRepository) FindSignature(ctx context.Context, signatureID uint) (*training.Signature, error) {
	var sig training.Signature
	err := r.db.WithContext(ctx).First(&sig, signatureID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, signoff.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sig, nil
}

func (r *AssignmentRepository) DeleteSignature(ctx context.Context, signatureID uint) error {
	res := r.db.WithContext(ctx).Delete(&training.Signature{}, signatureID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return signoff.ErrNotFound
	}
	return nil
}

func (r *AssignmentRepository) UpdateActiveCycle(ctx context.Context, assignmentID uint, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&training.UserModule{}).
		Where("id = ?", assignmentID).
		Update("active_cycle", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return signoff.ErrNotFound
	}
	return nil
}

func (r *AssignmentRepository) DistinctTrainingYears(ctx context.Context, traineeID uint) ([]int, error) {
	var years []int
	err := r.db.WithContext(ctx).
		Model(&training.UserModule{}).
		Where("user_id = ?", traineeID).
		Distinct().
		Pluck("training_year", &years).Error
	if err != nil {
		return nil, err
	}
	return years, nil
}
