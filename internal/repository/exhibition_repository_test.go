package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artculture/internal/models"
)

func newExhibitionRepo(t *testing.T) (*ExhibitionRepositoryImpl, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewExhibitionRepository(sqlx.NewDb(db, "sqlmock")), mock
}

const exhibitionUpdateQuery = `
		UPDATE exhibitions SET
			title_en = ?,
			title_uk = ?,
			description_en = ?,
			description_uk = ?,
			location_en = ?,
			location_uk = ?,
			start_date = ?,
			end_date = ?,
			time = ?,
			end_time = ?,
			address = ?,
			latitude = ?,
			longitude = ?,
			updated_at = ?
		WHERE exhibition_id = ?
	`

func TestExhibitionRepository_Update(t *testing.T) {
	ctx := context.Background()

	exhibition := &models.Exhibition{
		ExhibitionID: "exh-1",
		CreatedByID:  "museum-1",
		TitleEn:      "Modernism",
		TitleUk:      "Модернізм",
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ArtistIDs:    []string{"artist-1", "artist-2"},
		ProductIDs:   []string{"prod-1"},
	}

	t.Run("Успешное обновление переписывает join-строки", func(t *testing.T) {
		repo, mock := newExhibitionRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(exhibitionUpdateQuery).
			WithArgs("Modernism", "Модернізм", "", "", "", "",
				exhibition.StartDate, exhibition.EndDate, "", "", "",
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "exh-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM exhibition_artists WHERE exhibition_id = $1`).
			WithArgs("exh-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO exhibition_artists (exhibition_id, artist_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`).
			WithArgs("exh-1", "artist-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO exhibition_artists (exhibition_id, artist_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`).
			WithArgs("exh-1", "artist-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM exhibition_products WHERE exhibition_id = $1`).
			WithArgs("exh-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO exhibition_products (exhibition_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`).
			WithArgs("exh-1", "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Update(ctx, exhibition)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Выставка не найдена", func(t *testing.T) {
		repo, mock := newExhibitionRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(exhibitionUpdateQuery).
			WithArgs("Modernism", "Модернізм", "", "", "", "",
				exhibition.StartDate, exhibition.EndDate, "", "", "",
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "exh-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Update(ctx, exhibition)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
