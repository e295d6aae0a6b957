package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"artculture/internal/models"
)

func TestCanModify(t *testing.T) {
	owner := Claims{UserID: "user-1", Role: models.RoleCreator}
	admin := Claims{UserID: "admin-1", Role: models.RoleAdmin}
	stranger := Claims{UserID: "user-2", Role: models.RoleCreator}

	t.Run("Владелец может менять свой контент", func(t *testing.T) {
		assert.True(t, CanModify(owner, "user-1"))
	})

	t.Run("Админ может менять чужой контент", func(t *testing.T) {
		assert.True(t, CanModify(admin, "user-1"))
	})

	t.Run("Посторонний не может менять чужой контент", func(t *testing.T) {
		assert.False(t, CanModify(stranger, "user-1"))
	})
}

func TestCanModerate(t *testing.T) {
	assert.True(t, CanModerate(Claims{UserID: "a", Role: models.RoleAdmin}))
	assert.False(t, CanModerate(Claims{UserID: "b", Role: models.RoleEditor}))
	// владение не дает права модерации
	assert.False(t, CanModerate(Claims{UserID: "c", Role: models.RoleCreator}))
}

func TestCanChangeRole(t *testing.T) {
	admin := Claims{UserID: "admin-1", Role: models.RoleAdmin}

	t.Run("Админ не может понизить собственную роль", func(t *testing.T) {
		assert.False(t, CanChangeRole(admin, "admin-1", models.RoleUser))
	})

	t.Run("Смена собственной роли на ADMIN разрешена", func(t *testing.T) {
		assert.True(t, CanChangeRole(admin, "admin-1", models.RoleAdmin))
	})

	t.Run("Смена чужой роли разрешена", func(t *testing.T) {
		assert.True(t, CanChangeRole(admin, "user-1", models.RoleUser))
	})
}

func TestCanDeleteUser(t *testing.T) {
	admin := Claims{UserID: "admin-1", Role: models.RoleAdmin}

	assert.False(t, CanDeleteUser(admin, "admin-1"))
	assert.True(t, CanDeleteUser(admin, "user-1"))
}

func TestCreateRoles(t *testing.T) {
	t.Run("Картины создают CREATOR, MUSEUM и ADMIN", func(t *testing.T) {
		assert.True(t, CanCreateProduct(models.RoleCreator))
		assert.True(t, CanCreateProduct(models.RoleMuseum))
		assert.True(t, CanCreateProduct(models.RoleAdmin))
		assert.False(t, CanCreateProduct(models.RoleUser))
	})

	t.Run("Выставки создают MUSEUM, CREATOR, ADMIN и EXHIBITION", func(t *testing.T) {
		assert.True(t, CanCreateExhibition(models.RoleExhibition))
		assert.True(t, CanCreateExhibition(models.RoleMuseum))
		assert.False(t, CanCreateExhibition(models.RoleUser))
	})

	t.Run("Глоссарий ведут EDITOR и ADMIN", func(t *testing.T) {
		assert.True(t, CanEditArtTerms(models.RoleEditor))
		assert.True(t, CanEditArtTerms(models.RoleAdmin))
		assert.False(t, CanEditArtTerms(models.RoleCreator))
	})
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(models.RoleMuseum))
	assert.False(t, ValidRole("SUPERUSER"))
	assert.False(t, ValidRole(""))
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()

	_, ok := FromContext(ctx)
	assert.False(t, ok)

	claims := Claims{UserID: "user-1", Email: "u@example.com", Role: models.RoleUser}
	ctx = WithClaims(ctx, claims)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)
}
