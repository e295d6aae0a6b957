package access

import (
	"context"
	"slices"

	"artculture/internal/models"
)

// Claims - данные пользователя из проверенного токена
type Claims struct {
	UserID string
	Email  string
	Role   string
}

type contextKey struct{}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(Claims)
	return claims, ok
}

var allRoles = []string{
	models.RoleAdmin,
	models.RoleUser,
	models.RoleMuseum,
	models.RoleCreator,
	models.RoleEditor,
	models.RoleAuthor,
	models.RoleExhibition,
}

func ValidRole(role string) bool {
	return slices.Contains(allRoles, role)
}

// Allowed - чистая проверка роли против списка разрешенных
func Allowed(role string, required ...string) bool {
	return slices.Contains(required, role)
}

// CanModify - обновлять/удалять контент может владелец или ADMIN.
// Одно правило для постов, картин и выставок.
func CanModify(claims Claims, ownerID string) bool {
	return claims.UserID == ownerID || claims.Role == models.RoleAdmin
}

// CanModerate - approve/reject доступны только ADMIN, владение не учитывается
func CanModerate(claims Claims) bool {
	return claims.Role == models.RoleAdmin
}

func CanCreateProduct(role string) bool {
	return Allowed(role, models.RoleCreator, models.RoleMuseum, models.RoleAdmin)
}

func CanCreateExhibition(role string) bool {
	return Allowed(role, models.RoleMuseum, models.RoleCreator, models.RoleAdmin, models.RoleExhibition)
}

func CanEditArtTerms(role string) bool {
	return Allowed(role, models.RoleEditor, models.RoleAdmin)
}

// CanChangeRole - админ не может понизить собственную роль,
// иначе он заблокирует сам себя
func CanChangeRole(claims Claims, targetUserID, newRole string) bool {
	if claims.UserID == targetUserID && newRole != models.RoleAdmin {
		return false
	}
	return true
}

// CanDeleteUser - удаление собственного аккаунта всегда запрещено
func CanDeleteUser(claims Claims, targetUserID string) bool {
	return claims.UserID != targetUserID
}
