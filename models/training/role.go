package training

import "errors"

// Role — роль подписанта. Ровно три роли, других подписей не бывает.
type Role string

const (
	RoleCoordinator Role = "coordinator"
	RoleTrainer     Role = "trainer"
	RoleTrainee     Role = "trainee"
)

// SigningRoles — полный набор ролей, подписи которых нужны для зачета подмодуля.
var SigningRoles = []Role{RoleCoordinator, RoleTrainer, RoleTrainee}

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCoordinator, RoleTrainer, RoleTrainee:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
