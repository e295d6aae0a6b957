package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artculture/internal/models"
	"artculture/internal/pagination"
)

func newUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(sqlx.NewDb(db, "sqlmock")), mock
}

const userInsertQuery = `
		INSERT INTO users (user_id, email, password_hash, role, title, bio, image_url,
			country, city, street, house_number, postcode, latitude, longitude,
			refresh_token, refresh_token_expiry_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?)
	`

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		user := &models.User{
			Email: "museum@example.com",
			Role:  models.RoleMuseum,
			Title: "Музей",
		}

		mock.ExpectExec(userInsertQuery).
			WithArgs(
				sqlmock.AnyArg(), // user_id генерируется в репозитории
				"museum@example.com",
				sqlmock.AnyArg(), // password_hash
				models.RoleMuseum,
				"Музей",
				"", "", "", "", "", "", "",
				sqlmock.AnyArg(), sqlmock.AnyArg(), // latitude, longitude
				"",
				sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), // created_at, updated_at
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дублирование email дает ErrDuplicate", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		user := &models.User{Email: "dup@example.com", Role: models.RoleUser}

		mock.ExpectExec(userInsertQuery).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Пользователь найден", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		rows := sqlmock.NewRows([]string{"user_id", "email", "role"}).
			AddRow("user-1", "u@example.com", models.RoleCreator)

		mock.ExpectQuery(`SELECT * FROM users WHERE user_id = $1`).
			WithArgs("user-1").
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "u@example.com", user.Email)
		assert.Equal(t, models.RoleCreator, user.Role)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		mock.ExpectQuery(`SELECT * FROM users WHERE user_id = $1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		_, err := repo.GetUserByID(ctx, "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_UpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Роль обновлена", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		mock.ExpectExec(`UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2`).
			WithArgs(models.RoleEditor, "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRole(ctx, "user-1", models.RoleEditor))
	})

	t.Run("Нулевое обновление дает ErrNotFound", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		mock.ExpectExec(`UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2`).
			WithArgs(models.RoleEditor, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateRole(ctx, "missing", models.RoleEditor), ErrNotFound)
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Пользователь удален", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		mock.ExpectExec(`DELETE FROM users WHERE user_id = $1`).
			WithArgs("user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteUser(ctx, "user-1"))
	})

	t.Run("Удаление несуществующего", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		mock.ExpectExec(`DELETE FROM users WHERE user_id = $1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteUser(ctx, "missing"), ErrNotFound)
	})
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	repo, mock := newUserRepo(t)

	page := pagination.Page{Page: 2, PageSize: 20, OrderBy: "created_at", OrderDir: "desc"}

	rows := sqlmock.NewRows([]string{"user_id", "email", "role"}).
		AddRow("u-1", "a@example.com", models.RoleMuseum).
		AddRow("u-2", "b@example.com", models.RoleMuseum)

	mock.ExpectQuery(`SELECT * FROM users WHERE role = $1 ORDER BY created_at desc LIMIT 20 OFFSET 20`).
		WithArgs(models.RoleMuseum).
		WillReturnRows(rows)

	users, err := repo.List(ctx, page, models.RoleMuseum)

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListByRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Без буквы", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		rows := sqlmock.NewRows([]string{"user_id", "email", "role", "title"}).
			AddRow("u-1", "a@example.com", models.RoleCreator, "Артель").
			AddRow("u-2", "b@example.com", models.RoleCreator, "Верстат")

		mock.ExpectQuery(`SELECT * FROM users WHERE role = $1 ORDER BY title ASC`).
			WithArgs(models.RoleCreator).
			WillReturnRows(rows)

		users, err := repo.ListByRole(ctx, models.RoleCreator, "")

		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Алфавитный фильтр по первой букве названия", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		rows := sqlmock.NewRows([]string{"user_id", "email", "role", "title"}).
			AddRow("u-1", "a@example.com", models.RoleMuseum, "Арсенал")

		mock.ExpectQuery(`SELECT * FROM users WHERE role = $1 AND title ILIKE $2 ORDER BY title ASC`).
			WithArgs(models.RoleMuseum, "А%").
			WillReturnRows(rows)

		users, err := repo.ListByRole(ctx, models.RoleMuseum, "А")

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Арсенал", users[0].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
