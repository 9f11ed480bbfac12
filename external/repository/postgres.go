package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rodneymbrown1/videodraft/internal/repository"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) SaveSnapshot(ctx context.Context, input repository.SaveSnapshotInput) (*repository.SnapshotRecord, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO project_snapshots (project_name, slide_count, document, saved_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, project_name, slide_count, document, saved_at, created_at`,
		input.ProjectName, input.SlideCount, input.Document, input.SavedAt)
	return scanSnapshot(row)
}

func (r *PostgresRepository) GetLatestSnapshot(ctx context.Context, projectName string) (*repository.SnapshotRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, project_name, slide_count, document, saved_at, created_at
		 FROM project_snapshots
		 WHERE project_name = $1
		 ORDER BY saved_at DESC
		 LIMIT 1`,
		projectName)
	rec, err := scanSnapshot(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (r *PostgresRepository) ListSnapshots(ctx context.Context, projectName string, limit int) ([]repository.SnapshotRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_name, slide_count, document, saved_at, created_at
		 FROM project_snapshots
		 WHERE project_name = $1
		 ORDER BY saved_at DESC
		 LIMIT $2`,
		projectName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.SnapshotRecord
	for rows.Next() {
		rec, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanSnapshot(row pgx.Row) (*repository.SnapshotRecord, error) {
	var rec repository.SnapshotRecord
	if err := row.Scan(&rec.ID, &rec.ProjectName, &rec.SlideCount, &rec.Document, &rec.SavedAt, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
