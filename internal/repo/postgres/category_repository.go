package postgres

import (
	"context"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

const categoryColumns = `id, name, description, image_id, creation_timestamp, update_timestamp`

// CategoryRepository — категории в таблице categories.
type CategoryRepository struct {
	executor
}

func NewCategoryRepository(pool DB) *CategoryRepository {
	return &CategoryRepository{executor{pool: pool}}
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ImageID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	c, err := scanCategory(r.db(ctx).QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(domain.KindCategory, id, "select", err)
	}
	return c, nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return []*domain.Category{}, nil
	}
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1::text[])`, ids)
	if err != nil {
		return nil, mapErr(domain.KindCategory, "", "select", err)
	}
	return collect(rows, scanCategory)
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY creation_timestamp, id`)
	if err != nil {
		return nil, mapErr(domain.KindCategory, "", "select", err)
	}
	return collect(rows, scanCategory)
}

// Save — вставка при пустом ID (назначает uuid), иначе обновление.
func (r *CategoryRepository) Save(ctx context.Context, c *domain.Category) error {
	now := time.Now().UTC()

	if c.ID == "" {
		id := uuid.NewString()
		if _, err := r.db(ctx).Exec(ctx, `
			INSERT INTO categories (id, name, description, image_id, creation_timestamp, update_timestamp)
			VALUES ($1, $2, $3, $4, $5, $5)
		`, id, c.Name, c.Description, c.ImageID, now); err != nil {
			return mapErr(domain.KindCategory, id, "insert", err)
		}
		c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
		return nil
	}

	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, image_id = $4, update_timestamp = $5
		WHERE id = $1
	`, c.ID, c.Name, c.Description, c.ImageID, now)
	if err != nil {
		return mapErr(domain.KindCategory, c.ID, "update", err)
	}
	if err := affectedOrNotFound(tag, domain.KindCategory, c.ID); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

func (r *CategoryRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapErr(domain.KindCategory, id, "delete", err)
	}
	return affectedOrNotFound(tag, domain.KindCategory, id)
}
