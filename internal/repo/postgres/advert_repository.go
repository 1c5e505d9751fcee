package postgres

import (
	"context"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ ports.AdvertRepository = (*AdvertRepository)(nil)

const advertColumns = `id, user_id, name, description, delivery_time, price, image_id, status, advertiser, job_id,
	creation_timestamp, update_timestamp`

type AdvertRepository struct {
	executor
}

func NewAdvertRepository(pool DB) *AdvertRepository {
	return &AdvertRepository{executor{pool: pool}}
}

func scanAdvert(row pgx.Row) (*domain.Advert, error) {
	var (
		a     domain.Advert
		jobID string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Description, &a.DeliveryTime, &a.Price, &a.ImageID,
		&a.Status, &a.Advertiser, &jobID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Job = &domain.Job{Base: domain.Base{ID: jobID}}
	return &a, nil
}

func (r *AdvertRepository) FindByID(ctx context.Context, id string) (*domain.Advert, error) {
	a, err := scanAdvert(r.db(ctx).QueryRow(ctx,
		`SELECT `+advertColumns+` FROM adverts WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(domain.KindAdvert, id, "select", err)
	}
	return a, nil
}

func (r *AdvertRepository) FindAll(ctx context.Context) ([]*domain.Advert, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+advertColumns+` FROM adverts ORDER BY creation_timestamp, id`)
	if err != nil {
		return nil, mapErr(domain.KindAdvert, "", "select", err)
	}
	return collect(rows, scanAdvert)
}

// FindByUser — пустой advertiser означает любой тип.
func (r *AdvertRepository) FindByUser(ctx context.Context, userID string, advertiser domain.Advertiser) ([]*domain.Advert, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+advertColumns+` FROM adverts
		WHERE user_id = $1 AND ($2 = '' OR advertiser = $2)
		ORDER BY creation_timestamp, id`, userID, string(advertiser))
	if err != nil {
		return nil, mapErr(domain.KindAdvert, "", "select", err)
	}
	return collect(rows, scanAdvert)
}

func (r *AdvertRepository) Save(ctx context.Context, a *domain.Advert) error {
	now := time.Now().UTC()

	if a.ID == "" {
		id := uuid.NewString()
		if _, err := r.db(ctx).Exec(ctx, `
			INSERT INTO adverts (id, user_id, name, description, delivery_time, price, image_id, status, advertiser,
				job_id, creation_timestamp, update_timestamp)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		`, id, a.UserID, a.Name, a.Description, a.DeliveryTime, a.Price, a.ImageID,
			string(a.Status), string(a.Advertiser), a.JobID(), now); err != nil {
			return mapErr(domain.KindAdvert, id, "insert", err)
		}
		a.ID, a.CreatedAt, a.UpdatedAt = id, now, now
		return nil
	}

	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE adverts SET name = $2, description = $3, delivery_time = $4, price = $5, image_id = $6,
			status = $7, advertiser = $8, update_timestamp = $9
		WHERE id = $1
	`, a.ID, a.Name, a.Description, a.DeliveryTime, a.Price, a.ImageID,
		string(a.Status), string(a.Advertiser), now)
	if err != nil {
		return mapErr(domain.KindAdvert, a.ID, "update", err)
	}
	if err := affectedOrNotFound(tag, domain.KindAdvert, a.ID); err != nil {
		return err
	}
	a.UpdatedAt = now
	return nil
}

func (r *AdvertRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM adverts WHERE id = $1`, id)
	if err != nil {
		return mapErr(domain.KindAdvert, id, "delete", err)
	}
	return affectedOrNotFound(tag, domain.KindAdvert, id)
}
