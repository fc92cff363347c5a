package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/silkway-cargo/silkway/internal/models"
	"github.com/silkway-cargo/silkway/internal/services/importer"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ImportService interface {
	Import(ctx context.Context, actor models.Actor, data []byte) (*importer.Summary, error)
}

type TracksService interface {
	CreateTrack(ctx context.Context, in models.TrackCreateInput) (*models.Track, error)
	GetTrack(ctx context.Context, id uint64) (*models.Track, []*models.TrackHistory, error)
	ListTracks(ctx context.Context, f pgcargo.TrackFilter) ([]*models.Track, int64, error)
	SearchByNumber(ctx context.Context, trackNumber string) (*models.Track, error)
	BulkSetStatus(ctx context.Context, trackIDs []uint64, statusID uint64) (int64, error)
	DeleteTracks(ctx context.Context, trackIDs []uint64) (int64, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

type StatusesService interface {
	List(ctx context.Context) ([]*models.Status, error)
	Create(ctx context.Context, in models.StatusInput) (*models.Status, error)
	Update(ctx context.Context, id uint64, in models.StatusInput) (*models.Status, error)
	Delete(ctx context.Context, id uint64) error
}

type ParcelsService interface {
	Add(ctx context.Context, userID uint64, trackNumber string) (*models.Parcel, error)
	List(ctx context.Context, userID uint64, archived bool) ([]*models.ParcelView, error)
	SetArchived(ctx context.Context, userID, parcelID uint64, archived bool) error
	Delete(ctx context.Context, userID, parcelID uint64) error
}

type SettingsRepo interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, v models.Settings) error
}

type Server struct {
	importSvc ImportService
	tracks    TracksService
	statuses  StatusesService
	parcels   ParcelsService
	settings  SettingsRepo

	maxUploadBytes int64
	swaggerPath    string
}

func New(importSvc ImportService, tracks TracksService, statuses StatusesService, parcels ParcelsService, settings SettingsRepo) *Server {
	return &Server{
		importSvc:      importSvc,
		tracks:         tracks,
		statuses:       statuses,
		parcels:        parcels,
		settings:       settings,
		maxUploadBytes: 200 << 20,
	}
}

func (s *Server) WithMaxUploadBytes(n int64) *Server {
	if n > 0 {
		s.maxUploadBytes = n
	}
	return s
}

func (s *Server) WithSwagger(path string) *Server {
	s.swaggerPath = path
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(actorFromHeaders)

	if s.swaggerPath != "" {
		r.Get("/swagger.json", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, s.swaggerPath)
		})
		r.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger.json"),
		))
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)

			r.Post("/tracks/upload", s.handleUpload)
			r.Get("/tracks", s.handleListTracks)
			r.Post("/tracks", s.handleCreateTrack)
			r.Patch("/tracks", s.handleBulkSetStatus)
			r.Delete("/tracks", s.handleDeleteTracks)
			r.Get("/tracks/{id}", s.handleGetTrack)

			r.Post("/statuses", s.handleCreateStatus)
			r.Put("/statuses/{id}", s.handleUpdateStatus)
			r.Delete("/statuses/{id}", s.handleDeleteStatus)

			r.Put("/settings", s.handleUpdateSettings)
			r.Get("/stats", s.handleStats)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/tracks/search", s.handleSearchTrack)
			r.Get("/parcels", s.handleListParcels)
			r.Post("/parcels", s.handleAddParcel)
			r.Patch("/parcels/{id}", s.handleArchiveParcel)
			r.Delete("/parcels/{id}", s.handleDeleteParcel)
		})

		r.Get("/statuses", s.handleListStatuses)
		r.Get("/settings", s.handleGetSettings)
	})

	return r
}
