package main

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/pkg/validate"
)

// seedCategory — категория вместе с работами; category_id работ заполняется после создания категории.
type seedCategory struct {
	domain.CreateCategoryRequest
	Jobs []seedJob `json:"jobs"`
}

type seedJob struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keys        []string `json:"keys"`
}

func checkSeed(c *seedCategory) error {
	if err := validate.CreateCategory(&c.CreateCategoryRequest); err != nil {
		return err
	}
	for i := range c.Jobs {
		req := c.Jobs[i].request("pending")
		if err := validate.CreateJob(&req); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}
	return nil
}

func (j seedJob) request(categoryID string) domain.CreateJobRequest {
	return domain.CreateJobRequest{
		Name:        j.Name,
		Description: j.Description,
		CategoryID:  categoryID,
		Keys:        j.Keys,
	}
}

type categoryCreator interface {
	Create(ctx context.Context, req *domain.CreateCategoryRequest, asset *domain.Asset) (*domain.Category, error)
}

type jobCreator interface {
	Create(ctx context.Context, req *domain.CreateJobRequest, asset *domain.Asset) (*domain.Job, error)
}

// seeder — пишет каталог через сервисы, счётчики нужны для итоговой сводки.
type seeder struct {
	categories categoryCreator
	jobs       jobCreator
	created    struct{ categories, jobs int }
}

func (s *seeder) sink(ctx context.Context, c *seedCategory) error {
	cat, err := s.categories.Create(ctx, &c.CreateCategoryRequest, nil)
	if err != nil {
		return fmt.Errorf("category %q: %w", c.Name, err)
	}
	s.created.categories++

	for _, j := range c.Jobs {
		req := j.request(cat.ID)
		if _, err := s.jobs.Create(ctx, &req, nil); err != nil {
			return fmt.Errorf("job %q: %w", j.Name, err)
		}
		s.created.jobs++
	}
	return nil
}
