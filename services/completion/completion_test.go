package completion

import (
	"testing"

	"flight-training-backend/models/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitWith(ojt, requiresPractical, practical bool, roles ...training.Role) training.SubmoduleProgress {
	unit := training.SubmoduleProgress{
		OJTCompleted:       ojt,
		PracticalCompleted: practical,
	}
	unit.Submodule.RequiresPractical = requiresPractical
	for i, role := range roles {
		unit.Signatures = append(unit.Signatures, training.Signature{
			ID:       uint(i + 1),
			Role:     role,
			SignerID: uint(100 + i),
		})
	}
	return unit
}

func TestIsUnitCompleteRequiresAllThreeRoles(t *testing.T) {
	unit := unitWith(true, false, false, training.RoleCoordinator, training.RoleTrainer)
	require.False(t, IsUnitComplete(&unit))

	unit.Signatures = append(unit.Signatures, training.Signature{ID: 3, Role: training.RoleTrainee, SignerID: 103})
	require.True(t, IsUnitComplete(&unit))
}

func TestIsUnitCompleteThreeSignaturesTwoRolesNotEnough(t *testing.T) {
	// Три подписи, но роли только две — не зачтено.
	unit := unitWith(true, false, false, training.RoleCoordinator, training.RoleTrainer, training.RoleTrainer)
	assert.False(t, IsUnitComplete(&unit))
}

func TestIsUnitCompleteToleratesDuplicateRoleSignatures(t *testing.T) {
	// Дубль за роль (не должен возникать из-за уникального индекса, но если
	// уже в базе — считается один раз, без падения).
	unit := unitWith(true, false, false,
		training.RoleCoordinator, training.RoleCoordinator,
		training.RoleTrainer, training.RoleTrainee)
	assert.True(t, IsUnitComplete(&unit))
}

func TestIsUnitCompleteRequiresOJT(t *testing.T) {
	unit := unitWith(false, false, false, training.RoleCoordinator, training.RoleTrainer, training.RoleTrainee)
	assert.False(t, IsUnitComplete(&unit))
}

func TestIsUnitCompletePracticalGate(t *testing.T) {
	unit := unitWith(true, true, false, training.RoleCoordinator, training.RoleTrainer, training.RoleTrainee)
	require.False(t, IsUnitComplete(&unit))

	unit.PracticalCompleted = true
	require.True(t, IsUnitComplete(&unit))
}

func TestIsUnitCompletePracticalNotRequired(t *testing.T) {
	unit := unitWith(true, false, false, training.RoleCoordinator, training.RoleTrainer, training.RoleTrainee)
	assert.True(t, IsUnitComplete(&unit))
}

func TestAggregateEmptyAssignment(t *testing.T) {
	assignment := training.UserModule{}
	s := Aggregate(&assignment)
	assert.Equal(t, Summary{Total: 0, Completed: 0, Percentage: 0}, s)
	assert.Equal(t, StatusNotStarted, Classify(&assignment))
}

func TestAggregateHalfComplete(t *testing.T) {
	assignment := training.UserModule{
		Progress: []training.SubmoduleProgress{
			unitWith(true, false, false, training.RoleCoordinator, training.RoleTrainer, training.RoleTrainee),
			unitWith(true, false, false, training.RoleCoordinator, training.RoleTrainer, training.RoleTrainee),
			unitWith(true, false, false, training.RoleCoordinator, training.RoleTrainer),
			unitWith(false, false, false),
		},
	}
	s := Aggregate(&assignment)
	assert.Equal(t, Summary{Total: 4, Completed: 2, Percentage: 50}, s)
	assert.Equal(t, StatusInProgress, Classify(&assignment))
}

func TestAggregatePercentageRounding(t *testing.T) {
	complete := unitWith(true, false, false, training.RoleCoordinator, training.RoleTrainer, training.RoleTrainee)
	incomplete := unitWith(false, false, false)

	oneOfThree := training.UserModule{Progress: []training.SubmoduleProgress{complete, incomplete, incomplete}}
	assert.Equal(t, 33, Aggregate(&oneOfThree).Percentage)

	twoOfThree := training.UserModule{Progress: []training.SubmoduleProgress{complete, complete, incomplete}}
	assert.Equal(t, 67, Aggregate(&twoOfThree).Percentage)
}

func TestClassifyCompleted(t *testing.T) {
	assignment := training.UserModule{
		Progress: []training.SubmoduleProgress{
			unitWith(true, false, false, training.RoleCoordinator, training.RoleTrainer, training.RoleTrainee),
		},
	}
	assert.Equal(t, StatusCompleted, Classify(&assignment))
}

func TestClassifyNotStartedWhenNothingComplete(t *testing.T) {
	assignment := training.UserModule{
		Progress: []training.SubmoduleProgress{
			unitWith(true, false, false, training.RoleCoordinator),
			unitWith(false, false, false),
		},
	}
	assert.Equal(t, StatusNotStarted, Classify(&assignment))
}
