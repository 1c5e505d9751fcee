package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/repo/postgres"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var ts = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestCategoryRepository_FindByID(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewCategoryRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM categories WHERE id = \\$1").
		WithArgs("C1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "image_id", "creation_timestamp", "update_timestamp"}).
			AddRow("C1", "Repair", "home repair", "img-1", ts, ts))

	c, err := repo.FindByID(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "Repair", c.Name)
	assert.Equal(t, "img-1", c.ImageID)
}

func TestCategoryRepository_FindByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewCategoryRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM categories WHERE id = \\$1").
		WithArgs("C7").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "C7")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepository_Save_InsertAssignsID(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewCategoryRepository(mock)

	mock.ExpectExec("INSERT INTO categories").
		WithArgs(pgxmock.AnyArg(), "Repair", "home repair", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	c := &domain.Category{Name: "Repair", Description: "home repair"}
	require.NoError(t, repo.Save(context.Background(), c))
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCategoryRepository_Save_UpdateMissing_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewCategoryRepository(mock)

	mock.ExpectExec("UPDATE categories SET").
		WithArgs("C7", "n", "d", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Save(context.Background(), &domain.Category{Base: domain.Base{ID: "C7"}, Name: "n", Description: "d"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewCategoryRepository(mock)

	mock.ExpectExec("DELETE FROM categories WHERE id = \\$1").
		WithArgs("C1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM categories WHERE id = \\$1").
		WithArgs("C7").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM categories WHERE id = \\$1").
		WithArgs("C2").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "jobs_category_id_fkey"})

	require.NoError(t, repo.DeleteByID(context.Background(), "C1"))
	require.ErrorIs(t, repo.DeleteByID(context.Background(), "C7"), domain.ErrNotFound)

	err := repo.DeleteByID(context.Background(), "C2")
	require.ErrorIs(t, err, domain.ErrReferenced)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	var ref *domain.ReferenceError
	require.ErrorAs(t, err, &ref)
	assert.True(t, ref.OnDelete)
	assert.Equal(t, "jobs_category_id_fkey", ref.Constraint)
	assert.Equal(t, `category "C2" is still referenced (jobs_category_id_fkey)`, err.Error())
}

func jobRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "description", "image_id", "category_id",
		"creation_timestamp", "update_timestamp", "keys"})
}

func TestJobRepository_FindByID_WithKeys(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewJobRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM jobs j\\s+LEFT JOIN job_keys k (.+) WHERE j.id = \\$1").
		WithArgs("J1").
		WillReturnRows(jobRows().AddRow("J1", "Plumber", "pipes", "", "C1", ts, ts, []string{"pipe", "sink"}))

	j, err := repo.FindByID(context.Background(), "J1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pipe", "sink"}, j.Keys)
	assert.Equal(t, "C1", j.CategoryID())
}

func TestJobRepository_Save_InsertWithKeys(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewJobRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(pgxmock.AnyArg(), "Plumber", "pipes", "", "C1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO job_keys").
		WithArgs(pgxmock.AnyArg(), []string{"pipe", "sink"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	j := &domain.Job{
		Name: "Plumber", Description: "pipes",
		Category: &domain.Category{Base: domain.Base{ID: "C1"}},
		Keys:     []string{"pipe", "sink"},
	}
	require.NoError(t, repo.Save(context.Background(), j))
	assert.NotEmpty(t, j.ID)
}

func TestJobRepository_Save_UpdateReplacesKeys(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewJobRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE jobs SET").
		WithArgs("J1", "Plumber", "pipes", "img", "C1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM job_keys WHERE job_id = \\$1").
		WithArgs("J1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("INSERT INTO job_keys").
		WithArgs("J1", []string{"tap"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	j := &domain.Job{
		Base: domain.Base{ID: "J1"}, Name: "Plumber", Description: "pipes", ImageID: "img",
		Category: &domain.Category{Base: domain.Base{ID: "C1"}},
		Keys:     []string{"tap"},
	}
	require.NoError(t, repo.Save(context.Background(), j))
}

func TestJobRepository_Save_UpdateMissing_RollsBack(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewJobRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE jobs SET").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), &domain.Job{Base: domain.Base{ID: "J9"}, Name: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobRepository_FindIDsByKey(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewJobRepository(mock)

	mock.ExpectQuery("SELECT DISTINCT job_id FROM job_keys").
		WithArgs("PIPE").
		WillReturnRows(pgxmock.NewRows([]string{"job_id"}).AddRow("J1").AddRow("J3"))

	ids, err := repo.FindIDsByKey(context.Background(), "PIPE")
	require.NoError(t, err)
	assert.Equal(t, []string{"J1", "J3"}, ids)
}

func TestAdvertRepository_FindByUser(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewAdvertRepository(mock)

	cols := []string{"id", "user_id", "name", "description", "delivery_time", "price", "image_id", "status",
		"advertiser", "job_id", "creation_timestamp", "update_timestamp"}
	mock.ExpectQuery("SELECT (.+) FROM adverts\\s+WHERE user_id = \\$1").
		WithArgs("U9", "CUSTOMER").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("A1", "U9", "Fix sink", "", 3, 100, "", domain.AdvertOpen, domain.AdvertiserCustomer, "J1", ts, ts))

	ads, err := repo.FindByUser(context.Background(), "U9", domain.AdvertiserCustomer)
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, "J1", ads[0].JobID())
	assert.Equal(t, domain.AdvertOpen, ads[0].Status)
}

func TestOfferRepository_Save_Insert(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOfferRepository(mock)

	mock.ExpectExec("INSERT INTO offers").
		WithArgs(pgxmock.AnyArg(), "U1", 90, "OPEN", "A1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	o := &domain.Offer{UserID: "U1", OfferedPrice: 90, Status: domain.OfferOpen,
		Advert: &domain.Advert{Base: domain.Base{ID: "A1"}}}
	require.NoError(t, repo.Save(context.Background(), o))
	assert.NotEmpty(t, o.ID)
}

// Объявление удалили между проверкой и вставкой предложения.
func TestOfferRepository_Save_MissingAdvert(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOfferRepository(mock)

	mock.ExpectExec("INSERT INTO offers").
		WithArgs(pgxmock.AnyArg(), "U1", 90, "OPEN", "A404", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "offers_advert_id_fkey"})

	o := &domain.Offer{UserID: "U1", OfferedPrice: 90, Status: domain.OfferOpen,
		Advert: &domain.Advert{Base: domain.Base{ID: "A404"}}}
	err := repo.Save(context.Background(), o)
	require.ErrorIs(t, err, domain.ErrReferenced)
	assert.Contains(t, err.Error(), "references a missing record (offers_advert_id_fkey)")
	assert.Empty(t, o.ID)
}

func TestOfferRepository_FindByAdvertID_Error(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewOfferRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM offers WHERE advert_id = \\$1").
		WithArgs("A1").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByAdvertID(context.Background(), "A1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationRepository_SaveAndList(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewNotificationRepository(mock)

	n := &domain.Notification{ID: "N1", CreatedAt: ts, Message: "hi", OfferID: "O1", UserID: "U9"}
	mock.ExpectExec("INSERT INTO notifications").
		WithArgs("N1", ts, "hi", "O1", "U9").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT (.+) FROM notifications").
		WithArgs("U9", 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "creation_timestamp", "message", "offer_id", "user_id"}).
			AddRow("N1", ts, "hi", "O1", "U9"))

	require.NoError(t, repo.Save(context.Background(), n))
	list, err := repo.ListByUser(context.Background(), "U9", 0, -1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "O1", list[0].OfferID)
}
