package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simplon-hub/code-hub/internal/domain"
)

// DownloadRepository persists download tracking records.
type DownloadRepository interface {
	Create(ctx context.Context, download *domain.Download) error
	ListByUser(ctx context.Context, userID string) ([]domain.DownloadEntry, error)
	ListAll(ctx context.Context) ([]domain.DownloadEntry, error)
}

type downloadRepository struct {
	pool *pgxpool.Pool
}

// NewDownloadRepository returns a Postgres-backed implementation.
func NewDownloadRepository(pool *pgxpool.Pool) DownloadRepository {
	return &downloadRepository{pool: pool}
}

func (r *downloadRepository) Create(ctx context.Context, download *domain.Download) error {
	const query = `
        INSERT INTO downloads (id, user_id, project_id)
        VALUES ($1,$2,$3)
        RETURNING date_telechargement`
	return r.pool.QueryRow(ctx, query,
		download.ID,
		download.UserID,
		download.ProjectID,
	).Scan(&download.DateTelechargement)
}

const downloadEntryQuery = `
        SELECT d.id, d.user_id, d.project_id, d.date_telechargement,
               p.titre, p.taille, p.technologies
        FROM downloads d
        JOIN projects p ON p.id = d.project_id`

func (r *downloadRepository) ListByUser(ctx context.Context, userID string) ([]domain.DownloadEntry, error) {
	return r.queryEntries(ctx,
		downloadEntryQuery+` WHERE d.user_id=$1 ORDER BY d.date_telechargement DESC`, userID)
}

func (r *downloadRepository) ListAll(ctx context.Context) ([]domain.DownloadEntry, error) {
	return r.queryEntries(ctx, downloadEntryQuery+` ORDER BY d.date_telechargement DESC`)
}

func (r *downloadRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.DownloadEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DownloadEntry
	for rows.Next() {
		var entry domain.DownloadEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ProjectID,
			&entry.DateTelechargement,
			&entry.Titre,
			&entry.Taille,
			&entry.Technologies,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
