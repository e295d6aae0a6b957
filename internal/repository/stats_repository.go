package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// statsTables - закрытый список таблиц для подсчета
var statsTables = []struct {
	key   string
	table string
}{
	{"users", "users"},
	{"posts", "posts"},
	{"products", "products"},
	{"exhibitions", "exhibitions"},
	{"likes", "likes"},
	{"artTerms", "art_terms"},
}

func (r *statsRepository) CountEntities(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(statsTables))

	for _, entry := range statsTables {
		var count int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, entry.table)

		err := r.db.GetContext(ctx, &count, query)
		if err != nil {
			return nil, fmt.Errorf("ошибка при подсчете строк таблицы %s: %w", entry.table, err)
		}

		counts[entry.key] = count
	}

	return counts, nil
}
