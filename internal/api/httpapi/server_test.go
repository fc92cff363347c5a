package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/silkway-cargo/silkway/internal/models"
	"github.com/silkway-cargo/silkway/internal/services/importer"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	"github.com/stretchr/testify/require"
)

type fakeImport struct {
	gotActor models.Actor
	gotData  []byte
	summary  *importer.Summary
	err      error
}

func (f *fakeImport) Import(ctx context.Context, actor models.Actor, data []byte) (*importer.Summary, error) {
	f.gotActor = actor
	f.gotData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

type fakeTracks struct {
	track *models.Track
	err   error
}

func (f *fakeTracks) CreateTrack(ctx context.Context, in models.TrackCreateInput) (*models.Track, error) {
	return f.track, f.err
}
func (f *fakeTracks) GetTrack(ctx context.Context, id uint64) (*models.Track, []*models.TrackHistory, error) {
	return f.track, nil, f.err
}
func (f *fakeTracks) ListTracks(ctx context.Context, fl pgcargo.TrackFilter) ([]*models.Track, int64, error) {
	if f.track == nil {
		return nil, 0, f.err
	}
	return []*models.Track{f.track}, 1, f.err
}
func (f *fakeTracks) SearchByNumber(ctx context.Context, trackNumber string) (*models.Track, error) {
	if f.track == nil {
		return nil, pgcargo.ErrNotFound
	}
	return f.track, nil
}
func (f *fakeTracks) BulkSetStatus(ctx context.Context, trackIDs []uint64, statusID uint64) (int64, error) {
	return int64(len(trackIDs)), f.err
}
func (f *fakeTracks) DeleteTracks(ctx context.Context, trackIDs []uint64) (int64, error) {
	return int64(len(trackIDs)), f.err
}
func (f *fakeTracks) GetStats(ctx context.Context) (*models.Stats, error) {
	return &models.Stats{}, f.err
}

type fakeStatuses struct{}

func (f *fakeStatuses) List(ctx context.Context) ([]*models.Status, error) {
	return []*models.Status{{ID: 1, Name: "Created", Ord: 1}}, nil
}
func (f *fakeStatuses) Create(ctx context.Context, in models.StatusInput) (*models.Status, error) {
	return &models.Status{ID: 2, Name: in.Name, Ord: in.Ord}, nil
}
func (f *fakeStatuses) Update(ctx context.Context, id uint64, in models.StatusInput) (*models.Status, error) {
	return &models.Status{ID: id, Name: in.Name, Ord: in.Ord}, nil
}
func (f *fakeStatuses) Delete(ctx context.Context, id uint64) error { return nil }

type fakeParcels struct{}

func (f *fakeParcels) Add(ctx context.Context, userID uint64, trackNumber string) (*models.Parcel, error) {
	return &models.Parcel{ID: 1, UserID: userID}, nil
}
func (f *fakeParcels) List(ctx context.Context, userID uint64, archived bool) ([]*models.ParcelView, error) {
	return nil, nil
}
func (f *fakeParcels) SetArchived(ctx context.Context, userID, parcelID uint64, archived bool) error {
	return nil
}
func (f *fakeParcels) Delete(ctx context.Context, userID, parcelID uint64) error { return nil }

type fakeSettings struct{}

func (f *fakeSettings) GetSettings(ctx context.Context) (*models.Settings, error) {
	return &models.Settings{ExchangeRate: 495, PricePerKg: 3.5}, nil
}
func (f *fakeSettings) UpdateSettings(ctx context.Context, v models.Settings) error { return nil }

func newTestServer(imp ImportService) http.Handler {
	if imp == nil {
		imp = &fakeImport{summary: &importer.Summary{}}
	}
	return New(imp, &fakeTracks{track: &models.Track{ID: 1, TrackNumber: "LP001", StatusID: 1}},
		&fakeStatuses{}, &fakeParcels{}, &fakeSettings{}).Router()
}

func asAdmin(r *http.Request) *http.Request {
	r.Header.Set("X-User-Id", "1")
	r.Header.Set("X-User-Role", models.RoleAdmin)
	return r
}

func asClient(r *http.Request) *http.Request {
	r.Header.Set("X-User-Id", "42")
	r.Header.Set("X-User-Role", models.RoleClient)
	return r
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	h := newTestServer(nil)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/tracks/upload"},
		{http.MethodGet, "/api/tracks"},
		{http.MethodPatch, "/api/tracks"},
		{http.MethodDelete, "/api/tracks"},
		{http.MethodPost, "/api/statuses"},
		{http.MethodPut, "/api/settings"},
		{http.MethodGet, "/api/stats"},
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, asClient(httptest.NewRequest(tc.method, tc.path, nil)))
		require.Equal(t, http.StatusForbidden, w.Code, tc.method+" "+tc.path)
	}
}

func TestAuthRoutes_RequireUser(t *testing.T) {
	h := newTestServer(nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/parcels", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, asClient(httptest.NewRequest(http.MethodGet, "/api/parcels", nil)))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPublicRoutes_NoAuth(t *testing.T) {
	h := newTestServer(nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/statuses", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload_ReturnsSummary(t *testing.T) {
	imp := &fakeImport{summary: &importer.Summary{Created: 3, Updated: 1, Errors: []string{}, Total: 4}}
	h := newTestServer(imp)

	body, contentType := multipartFile(t, "выгрузка.xlsx", []byte("fake xlsx bytes"))
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/tracks/upload", body))
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var sum importer.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	require.Equal(t, 3, sum.Created)
	require.Equal(t, 1, sum.Updated)
	require.Equal(t, 4, sum.Total)

	require.Equal(t, []byte("fake xlsx bytes"), imp.gotData)
	require.True(t, imp.gotActor.IsAdmin())
}

func TestUpload_RejectsWrongExtension(t *testing.T) {
	h := newTestServer(nil)

	body, contentType := multipartFile(t, "data.csv", []byte("a,b"))
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/tracks/upload", body))
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), ".xlsx")
}

func TestCreateTrack_Validation(t *testing.T) {
	h := newTestServer(nil)

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/tracks", strings.NewReader(`{"statusId":1}`)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	req = asAdmin(httptest.NewRequest(http.MethodPost, "/api/tracks", strings.NewReader(`{"trackNumber":"LP001","statusId":1}`)))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestSearchTrack(t *testing.T) {
	h := newTestServer(nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, asClient(httptest.NewRequest(http.MethodGet, "/api/tracks/search?number=LP001", nil)))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "LP001")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, asClient(httptest.NewRequest(http.MethodGet, "/api/tracks/search", nil)))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkSetStatus(t *testing.T) {
	h := newTestServer(nil)

	req := asAdmin(httptest.NewRequest(http.MethodPatch, "/api/tracks", strings.NewReader(`{"trackIds":[1,2],"statusId":3}`)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"updated":2`)
}
