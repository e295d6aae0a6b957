package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLikeRepo(t *testing.T) (LikeRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewLikeRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestLikeRepository_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Лайка не было - ставим", func(t *testing.T) {
		repo, mock := newLikeRepo(t)

		mock.ExpectExec(`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`).
			WithArgs("user-1", "post-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectExec(`INSERT INTO likes (like_id, user_id, post_id, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`).
			WithArgs(sqlmock.AnyArg(), "user-1", "post-1").
			WillReturnResult(sqlmock.NewResult(1, 1))

		liked, err := repo.Toggle(ctx, "user-1", "post", "post-1")

		assert.NoError(t, err)
		assert.True(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Лайк был - снимаем", func(t *testing.T) {
		repo, mock := newLikeRepo(t)

		mock.ExpectExec(`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`).
			WithArgs("user-1", "post-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		liked, err := repo.Toggle(ctx, "user-1", "post", "post-1")

		assert.NoError(t, err)
		assert.False(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Гонка вставки трактуется как уже лайкнуто", func(t *testing.T) {
		repo, mock := newLikeRepo(t)

		mock.ExpectExec(`DELETE FROM likes WHERE user_id = $1 AND product_id = $2`).
			WithArgs("user-1", "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectExec(`INSERT INTO likes (like_id, user_id, product_id, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`).
			WithArgs(sqlmock.AnyArg(), "user-1", "prod-1").
			WillReturnError(&pq.Error{Code: "23505"})

		liked, err := repo.Toggle(ctx, "user-1", "product", "prod-1")

		assert.NoError(t, err)
		assert.True(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Неизвестный тип цели", func(t *testing.T) {
		repo, _ := newLikeRepo(t)

		_, err := repo.Toggle(ctx, "user-1", "comment", "c-1")

		assert.ErrorIs(t, err, ErrBadLikeTarget)
	})

	t.Run("Лайк музея пишется в liked_user_id", func(t *testing.T) {
		repo, mock := newLikeRepo(t)

		mock.ExpectExec(`DELETE FROM likes WHERE user_id = $1 AND liked_user_id = $2`).
			WithArgs("user-1", "museum-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectExec(`INSERT INTO likes (like_id, user_id, liked_user_id, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`).
			WithArgs(sqlmock.AnyArg(), "user-1", "museum-1").
			WillReturnResult(sqlmock.NewResult(1, 1))

		liked, err := repo.Toggle(ctx, "user-1", "museum", "museum-1")

		assert.NoError(t, err)
		assert.True(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLikeRepository_Exists(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLikeRepo(t)

	mock.ExpectQuery(`SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND exhibition_id = $2)`).
		WithArgs("user-1", "exh-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(ctx, "user-1", "exhibition", "exh-1")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Count(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLikeRepo(t)

	mock.ExpectQuery(`SELECT COUNT(*) FROM likes WHERE post_id = $1`).
		WithArgs("post-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(ctx, "post", "post-1")

	assert.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
