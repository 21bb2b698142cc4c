package signoff

import "flight-training-backend/models/training"

// Actor — действующее лицо запроса. Роль и идентификатор передаются явно из
// JWT-клеймов, внутри сервисов нет обращения к текущей сессии.
type Actor struct {
	UserID uint
	Role   training.Role
}

// CanSign — может ли actor поставить подпись за роль requested на подмодуле.
// Правила:
//   - координатор подписывает за координатора или за тренера;
//   - тренер подписывает только за тренера;
//   - обучаемый подписывает только за обучаемого и только на своем подмодуле;
//   - за роль нельзя подписаться повторно;
//   - один пользователь не может занять две роли на одном подмодуле.
//
// Функция детерминированная и без побочных эффектов: ею пользуется и
// серверная авторизация, и клиент для показа доступных кнопок.
func CanSign(actor Actor, requested training.Role, unit *training.SubmoduleProgress) bool {
	if unit.HasSignatureForRole(requested) {
		return false
	}
	if unit.HasSignatureBy(actor.UserID) {
		return false
	}
	switch actor.Role {
	case training.RoleCoordinator:
		return requested == training.RoleCoordinator || requested == training.RoleTrainer
	case training.RoleTrainer:
		return requested == training.RoleTrainer
	case training.RoleTrainee:
		return requested == training.RoleTrainee && unit.UserModule.UserID == actor.UserID
	}
	return false
}

// CanRemove — подпись удаляет только тот, кто ее поставил. Роль удаляющего
// значения не имеет: координатор не может снять чужую подпись.
func CanRemove(actorUserID uint, sig *training.Signature) bool {
	return sig.SignerID == actorUserID
}
