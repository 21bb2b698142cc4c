package signoff

import (
	"context"

	"flight-training-backend/models/training"
	"flight-training-backend/services/completion"

	"github.com/google/uuid"
)

// Store — узкий контракт хранилища, нужный леджеру. Реализуется пакетом
// repository. InsertSignatureIfAbsent обязан быть атомарным на уровне БД:
// из двух одновременных вставок за одну роль проходит ровно одна.
type Store interface {
	LoadUnit(ctx context.Context, unitID uint) (*training.SubmoduleProgress, error)
	InsertSignatureIfAbsent(ctx context.Context, sig *training.Signature) error
	FindSignature(ctx context.Context, signatureID uint) (*training.Signature, error)
	DeleteSignature(ctx context.Context, signatureID uint) error
}

// UnitStatus — пересчитанная готовность подмодуля после изменения подписей,
// чтобы клиенту не требовался второй запрос.
type UnitStatus struct {
	Complete bool `json:"complete"`
}

// Ledger ведет подписи одного подмодуля: добавление и снятие с проверкой
// полномочий и пересчетом готовности. Подписи соседних подмодулей и само
// назначение не трогаются.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Add ставит подпись за роль requested от имени actor.
// Ошибки: ErrNotFound — нет такого подмодуля; ErrAlreadySigned — за роль уже
// подписались (в том числе при проигрыше гонки на вставке); ErrNotAuthorized —
// правила CanSign не допускают подпись.
func (l *Ledger) Add(ctx context.Context, unitID uint, requested training.Role, actor Actor) (*training.Signature, UnitStatus, error) {
	unit, err := l.store.LoadUnit(ctx, unitID)
	if err != nil {
		return nil, UnitStatus{}, err
	}

	// Разделяем "уже подписано" и "не положено": клиенту нужны разные ответы.
	if unit.HasSignatureForRole(requested) {
		return nil, UnitStatus{}, ErrAlreadySigned
	}
	if !CanSign(actor, requested, unit) {
		return nil, UnitStatus{}, ErrNotAuthorized
	}

	sig := &training.Signature{
		ProgressID: unitID,
		Role:       requested,
		SignerID:   actor.UserID,
		ExportRef:  uuid.NewString(),
	}
	if err := l.store.InsertSignatureIfAbsent(ctx, sig); err != nil {
		return nil, UnitStatus{}, err
	}

	status, err := l.unitStatus(ctx, unitID)
	if err != nil {
		return nil, UnitStatus{}, err
	}
	return sig, status, nil
}

// Remove снимает подпись signatureID. Разрешено только автору подписи.
func (l *Ledger) Remove(ctx context.Context, signatureID uint, actor Actor) (UnitStatus, error) {
	sig, err := l.store.FindSignature(ctx, signatureID)
	if err != nil {
		return UnitStatus{}, err
	}
	if !CanRemove(actor.UserID, sig) {
		return UnitStatus{}, ErrNotAuthorized
	}
	if err := l.store.DeleteSignature(ctx, signatureID); err != nil {
		return UnitStatus{}, err
	}
	return l.unitStatus(ctx, sig.ProgressID)
}

func (l *Ledger) unitStatus(ctx context.Context, unitID uint) (UnitStatus, error) {
	unit, err := l.store.LoadUnit(ctx, unitID)
	if err != nil {
		return UnitStatus{}, err
	}
	return UnitStatus{Complete: completion.IsUnitComplete(unit)}, nil
}
