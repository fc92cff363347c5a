package parcels

import (
	"context"
	"testing"

	"github.com/silkway-cargo/silkway/internal/models"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	tracks  map[string]*models.Track
	parcels map[[2]uint64]*models.Parcel
	blocked map[uint64]bool
	nextID  uint64
}

func newFakeRepo(tracks ...*models.Track) *fakeRepo {
	r := &fakeRepo{tracks: map[string]*models.Track{}, parcels: map[[2]uint64]*models.Parcel{}, blocked: map[uint64]bool{}}
	for _, t := range tracks {
		r.tracks[t.TrackNumber] = t
	}
	return r
}

func (r *fakeRepo) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	return &models.User{ID: id, Role: models.RoleClient, IsBlocked: r.blocked[id]}, nil
}

func (r *fakeRepo) GetTrackByNumber(ctx context.Context, trackNumber string) (*models.Track, error) {
	t, ok := r.tracks[trackNumber]
	if !ok {
		return nil, pgcargo.ErrNotFound
	}
	return t, nil
}

func (r *fakeRepo) AddParcel(ctx context.Context, userID, trackID uint64) (*models.Parcel, error) {
	key := [2]uint64{userID, trackID}
	if _, ok := r.parcels[key]; ok {
		return nil, pgcargo.ErrDuplicateLink
	}
	r.nextID++
	p := &models.Parcel{ID: r.nextID, UserID: userID, TrackID: trackID}
	r.parcels[key] = p
	return p, nil
}

func (r *fakeRepo) ListParcels(ctx context.Context, userID uint64, archived bool) ([]*models.ParcelView, error) {
	var out []*models.ParcelView
	for _, p := range r.parcels {
		if p.UserID == userID && p.IsArchived == archived {
			out = append(out, &models.ParcelView{Parcel: *p})
		}
	}
	return out, nil
}

func (r *fakeRepo) SetParcelArchived(ctx context.Context, userID, parcelID uint64, archived bool) error {
	for _, p := range r.parcels {
		if p.ID == parcelID && p.UserID == userID {
			p.IsArchived = archived
			return nil
		}
	}
	return pgcargo.ErrNotFound
}

func (r *fakeRepo) DeleteParcel(ctx context.Context, userID, parcelID uint64) error {
	for key, p := range r.parcels {
		if p.ID == parcelID && p.UserID == userID {
			delete(r.parcels, key)
			return nil
		}
	}
	return pgcargo.ErrNotFound
}

func TestAdd_LinksExistingTrack(t *testing.T) {
	repo := newFakeRepo(&models.Track{ID: 10, TrackNumber: "LP001"})
	svc := New(repo)

	p, err := svc.Add(context.Background(), 42, "  LP001  ")
	require.NoError(t, err)
	require.Equal(t, uint64(10), p.TrackID)
	require.Equal(t, uint64(42), p.UserID)
}

func TestAdd_UnknownTrack(t *testing.T) {
	svc := New(newFakeRepo())

	_, err := svc.Add(context.Background(), 42, "NOPE")
	require.ErrorIs(t, err, pgcargo.ErrNotFound)
}

func TestAdd_DuplicateLink(t *testing.T) {
	repo := newFakeRepo(&models.Track{ID: 10, TrackNumber: "LP001"})
	svc := New(repo)

	_, err := svc.Add(context.Background(), 42, "LP001")
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), 42, "LP001")
	require.ErrorIs(t, err, pgcargo.ErrDuplicateLink)
}

func TestAdd_BlockedUser(t *testing.T) {
	repo := newFakeRepo(&models.Track{ID: 10, TrackNumber: "LP001"})
	repo.blocked[42] = true
	svc := New(repo)

	_, err := svc.Add(context.Background(), 42, "LP001")
	require.ErrorIs(t, err, ErrBlocked)
}

func TestArchiveAndList(t *testing.T) {
	repo := newFakeRepo(&models.Track{ID: 10, TrackNumber: "LP001"})
	svc := New(repo)

	p, err := svc.Add(context.Background(), 42, "LP001")
	require.NoError(t, err)

	require.NoError(t, svc.SetArchived(context.Background(), 42, p.ID, true))

	active, err := svc.List(context.Background(), 42, false)
	require.NoError(t, err)
	require.Empty(t, active)

	archived, err := svc.List(context.Background(), 42, true)
	require.NoError(t, err)
	require.Len(t, archived, 1)
}

func TestDelete_OwnerScoped(t *testing.T) {
	repo := newFakeRepo(&models.Track{ID: 10, TrackNumber: "LP001"})
	svc := New(repo)

	p, err := svc.Add(context.Background(), 42, "LP001")
	require.NoError(t, err)

	// чужой пользователь не видит посылку
	err = svc.Delete(context.Background(), 7, p.ID)
	require.ErrorIs(t, err, pgcargo.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), 42, p.ID))
}
