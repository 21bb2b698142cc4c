package signoff

import (
	"testing"

	"flight-training-backend/models/training"

	"github.com/stretchr/testify/assert"
)

const traineeOwnerID = uint(30)

func freshUnit() *training.SubmoduleProgress {
	unit := &training.SubmoduleProgress{ID: 1, OJTCompleted: true}
	unit.UserModule.UserID = traineeOwnerID
	return unit
}

func TestCanSignRoleMatrix(t *testing.T) {
	coordinator := Actor{UserID: 10, Role: training.RoleCoordinator}
	trainer := Actor{UserID: 20, Role: training.RoleTrainer}
	owner := Actor{UserID: traineeOwnerID, Role: training.RoleTrainee}

	cases := []struct {
		name      string
		actor     Actor
		requested training.Role
		want      bool
	}{
		{"координатор за координатора", coordinator, training.RoleCoordinator, true},
		{"координатор за тренера", coordinator, training.RoleTrainer, true},
		{"координатор за обучаемого", coordinator, training.RoleTrainee, false},
		{"тренер за тренера", trainer, training.RoleTrainer, true},
		{"тренер за координатора", trainer, training.RoleCoordinator, false},
		{"тренер за обучаемого", trainer, training.RoleTrainee, false},
		{"обучаемый за себя", owner, training.RoleTrainee, true},
		{"обучаемый за координатора", owner, training.RoleCoordinator, false},
		{"обучаемый за тренера", owner, training.RoleTrainer, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanSign(tc.actor, tc.requested, freshUnit()))
		})
	}
}

func TestCanSignTraineeOnlyOwnUnit(t *testing.T) {
	stranger := Actor{UserID: 99, Role: training.RoleTrainee}
	assert.False(t, CanSign(stranger, training.RoleTrainee, freshUnit()))
}

func TestCanSignDeniesSignedRole(t *testing.T) {
	unit := freshUnit()
	unit.Signatures = []training.Signature{{ID: 1, Role: training.RoleTrainer, SignerID: 20}}

	coordinator := Actor{UserID: 10, Role: training.RoleCoordinator}
	assert.False(t, CanSign(coordinator, training.RoleTrainer, unit))
	assert.True(t, CanSign(coordinator, training.RoleCoordinator, unit))
}

func TestCanSignOneIdentityOneRolePerUnit(t *testing.T) {
	// Координатор уже подписался за тренера — вторую роль на том же
	// подмодуле он занять не может.
	unit := freshUnit()
	unit.Signatures = []training.Signature{{ID: 1, Role: training.RoleTrainer, SignerID: 10}}

	coordinator := Actor{UserID: 10, Role: training.RoleCoordinator}
	assert.False(t, CanSign(coordinator, training.RoleCoordinator, unit))

	other := Actor{UserID: 11, Role: training.RoleCoordinator}
	assert.True(t, CanSign(other, training.RoleCoordinator, unit))
}

func TestCanRemoveSignerOnly(t *testing.T) {
	sig := &training.Signature{ID: 5, Role: training.RoleTrainer, SignerID: 20}
	assert.True(t, CanRemove(20, sig))
	assert.False(t, CanRemove(10, sig))
}
