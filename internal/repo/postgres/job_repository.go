package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ ports.JobRepository = (*JobRepository)(nil)

// jobSelect — работа вместе с ключами одним запросом (ключи агрегируются в массив).
const jobSelect = `
	SELECT j.id, j.name, j.description, j.image_id, j.category_id,
		j.creation_timestamp, j.update_timestamp,
		COALESCE(array_agg(k.key ORDER BY k.key) FILTER (WHERE k.key IS NOT NULL), '{}') AS keys
	FROM jobs j
	LEFT JOIN job_keys k ON k.job_id = j.id`

// JobRepository — работы (jobs) и их ключевые слова (job_keys).
type JobRepository struct {
	executor
}

func NewJobRepository(pool DB) *JobRepository {
	return &JobRepository{executor{pool: pool}}
}

// scanJob — категория заполняется только идентификатором.
func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		j          domain.Job
		categoryID string
	)
	if err := row.Scan(&j.ID, &j.Name, &j.Description, &j.ImageID, &categoryID,
		&j.CreatedAt, &j.UpdatedAt, &j.Keys); err != nil {
		return nil, err
	}
	j.Category = &domain.Category{Base: domain.Base{ID: categoryID}}
	return &j, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	j, err := scanJob(r.db(ctx).QueryRow(ctx, jobSelect+`
		WHERE j.id = $1
		GROUP BY j.id`, id))
	if err != nil {
		return nil, mapErr(domain.KindJob, id, "select", err)
	}
	return j, nil
}

func (r *JobRepository) FindAll(ctx context.Context) ([]*domain.Job, error) {
	rows, err := r.db(ctx).Query(ctx, jobSelect+`
		GROUP BY j.id
		ORDER BY j.creation_timestamp, j.id`)
	if err != nil {
		return nil, mapErr(domain.KindJob, "", "select", err)
	}
	return collect(rows, scanJob)
}

func (r *JobRepository) FindByCategoryID(ctx context.Context, categoryID string) ([]*domain.Job, error) {
	rows, err := r.db(ctx).Query(ctx, jobSelect+`
		WHERE j.category_id = $1
		GROUP BY j.id
		ORDER BY j.creation_timestamp, j.id`, categoryID)
	if err != nil {
		return nil, mapErr(domain.KindJob, "", "select", err)
	}
	return collect(rows, scanJob)
}

// FindIDsByKey — подстрока без учёта регистра; strpos не требует экранирования % и _.
func (r *JobRepository) FindIDsByKey(ctx context.Context, keyword string) ([]string, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT DISTINCT job_id FROM job_keys
		WHERE strpos(lower(key), lower($1)) > 0
		ORDER BY job_id`, keyword)
	if err != nil {
		return nil, mapErr(domain.KindJob, "", "select keys", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("job keys rows: %w", err)
	}
	return ids, nil
}

// Save — запись работы и полная замена её ключей в одной транзакции.
func (r *JobRepository) Save(ctx context.Context, j *domain.Job) error {
	now := time.Now().UTC()
	insert := j.ID == ""
	id := j.ID
	if insert {
		id = uuid.NewString()
	}

	err := r.atomically(ctx, func(tx pgx.Tx) error {
		if insert {
			if _, err := tx.Exec(ctx, `
				INSERT INTO jobs (id, name, description, image_id, category_id, creation_timestamp, update_timestamp)
				VALUES ($1, $2, $3, $4, $5, $6, $6)
			`, id, j.Name, j.Description, j.ImageID, j.CategoryID(), now); err != nil {
				return mapErr(domain.KindJob, id, "insert", err)
			}
		} else {
			tag, err := tx.Exec(ctx, `
				UPDATE jobs SET name = $2, description = $3, image_id = $4, category_id = $5, update_timestamp = $6
				WHERE id = $1
			`, id, j.Name, j.Description, j.ImageID, j.CategoryID(), now)
			if err != nil {
				return mapErr(domain.KindJob, id, "update", err)
			}
			if err := affectedOrNotFound(tag, domain.KindJob, id); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `DELETE FROM job_keys WHERE job_id = $1`, id); err != nil {
				return mapErr(domain.KindJob, id, "delete keys", err)
			}
		}

		if len(j.Keys) > 0 {
			if _, err := tx.Exec(ctx, `
				INSERT INTO job_keys (job_id, key)
				SELECT $1, k FROM unnest($2::text[]) AS k
				ON CONFLICT DO NOTHING
			`, id, j.Keys); err != nil {
				return mapErr(domain.KindJob, id, "insert keys", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if insert {
		j.ID, j.CreatedAt = id, now
	}
	j.UpdatedAt = now
	return nil
}

// DeleteByID — ключи удаляются каскадно.
func (r *JobRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return mapErr(domain.KindJob, id, "delete", err)
	}
	return affectedOrNotFound(tag, domain.KindJob, id)
}
