package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simplon-hub/code-hub/internal/domain"
)

// ProjectRepository persists submitted projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id, titre, description, categorie, technologies, auteur_id, auteur_nom, date_creation, taille, images, file_path`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(
		&p.ID,
		&p.Titre,
		&p.Description,
		&p.Categorie,
		&p.Technologies,
		&p.AuteurID,
		&p.AuteurNom,
		&p.DateCreation,
		&p.Taille,
		&p.Images,
		&p.FilePath,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (id, titre, description, categorie, technologies, auteur_id, auteur_nom, taille, images, file_path)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING date_creation`

	return r.pool.QueryRow(ctx, query,
		project.ID,
		project.Titre,
		project.Description,
		project.Categorie,
		project.Technologies,
		project.AuteurID,
		project.AuteurNom,
		project.Taille,
		project.Images,
		project.FilePath,
	).Scan(&project.DateCreation)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1`, id))
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY date_creation DESC`)
}

func (r *projectRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Project, error) {
	return r.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE auteur_id=$1 ORDER BY date_creation DESC`, authorID)
}

func (r *projectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *project)
	}
	return result, rows.Err()
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
