package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/office"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/fixtures"
)

type fakeOfficeRepo struct {
	created []office.OfficeLocation
	updated []office.OfficeLocation
}

func (f *fakeOfficeRepo) Create(_ context.Context, loc office.OfficeLocation) (office.OfficeLocation, error) {
	loc.ID = "office-1"
	f.created = append(f.created, loc)
	return loc, nil
}

func (f *fakeOfficeRepo) GetByID(_ context.Context, _ string) (office.OfficeLocation, error) {
	return office.OfficeLocation{}, office.ErrOfficeNotFound
}

func (f *fakeOfficeRepo) List(_ context.Context) ([]office.OfficeLocation, error) {
	return nil, nil
}

func (f *fakeOfficeRepo) Update(_ context.Context, loc office.OfficeLocation) error {
	f.updated = append(f.updated, loc)
	return nil
}

func TestCreateOfficeAppliesDefaultRadius(t *testing.T) {
	repo := &fakeOfficeRepo{}
	h := NewOfficeHandler(repo)

	body := `{"name":"Kampus Pusat","latitude":-6.1753924,"longitude":106.8271528}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offices", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, fixtures.DefaultOfficeRadiusMeters, repo.created[0].RadiusMeters,
		"an office registered without a radius must not end up with a zero-meter geofence")
}

func TestCreateOfficeKeepsExplicitRadius(t *testing.T) {
	repo := &fakeOfficeRepo{}
	h := NewOfficeHandler(repo)

	body := `{"name":"Kampus Timur","latitude":-6.2,"longitude":106.9,"radius_meters":150}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offices", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, 150, repo.created[0].RadiusMeters)
}

func TestUpdateOfficeAppliesDefaultRadius(t *testing.T) {
	repo := &fakeOfficeRepo{}
	h := NewOfficeHandler(repo)

	body := `{"name":"Kampus Pusat","latitude":-6.1753924,"longitude":106.8271528}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/offices/office-1", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, fixtures.DefaultOfficeRadiusMeters, repo.updated[0].RadiusMeters)
}
