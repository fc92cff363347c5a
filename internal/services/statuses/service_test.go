package statuses

import (
	"context"
	"testing"

	"github.com/silkway-cargo/silkway/internal/models"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	statuses map[uint64]*models.Status
	inUse    map[uint64]bool
	nextID   uint64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{statuses: map[uint64]*models.Status{}, inUse: map[uint64]bool{}}
}

func (r *fakeRepo) ListStatuses(ctx context.Context) ([]*models.Status, error) {
	var out []*models.Status
	for _, st := range r.statuses {
		out = append(out, st)
	}
	return out, nil
}

func (r *fakeRepo) CreateStatus(ctx context.Context, in models.StatusInput) (*models.Status, error) {
	r.nextID++
	st := &models.Status{ID: r.nextID, Name: in.Name, ChineseName: in.ChineseName, Ord: in.Ord, Color: in.Color, IsFinal: in.IsFinal}
	r.statuses[st.ID] = st
	return st, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uint64, in models.StatusInput) (*models.Status, error) {
	st, ok := r.statuses[id]
	if !ok {
		return nil, pgcargo.ErrNotFound
	}
	st.Name, st.ChineseName, st.Ord, st.Color, st.IsFinal = in.Name, in.ChineseName, in.Ord, in.Color, in.IsFinal
	return st, nil
}

func (r *fakeRepo) DeleteStatus(ctx context.Context, id uint64) error {
	if _, ok := r.statuses[id]; !ok {
		return pgcargo.ErrNotFound
	}
	if r.inUse[id] {
		return pgcargo.ErrStatusInUse
	}
	delete(r.statuses, id)
	return nil
}

func TestCreate_Validates(t *testing.T) {
	svc := New(newFakeRepo())

	_, err := svc.Create(context.Background(), models.StatusInput{Ord: 1})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), models.StatusInput{Name: "Created"})
	require.Error(t, err)

	st, err := svc.Create(context.Background(), models.StatusInput{Name: "Created", Ord: 1})
	require.NoError(t, err)
	require.Equal(t, "#6B7280", st.Color)
}

func TestCreate_KeepsExplicitColor(t *testing.T) {
	svc := New(newFakeRepo())

	st, err := svc.Create(context.Background(), models.StatusInput{Name: "Arrived", Ord: 5, Color: "#10B981"})
	require.NoError(t, err)
	require.Equal(t, "#10B981", st.Color)
}

func TestDelete_InUse(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)

	st, err := svc.Create(context.Background(), models.StatusInput{Name: "Created", Ord: 1})
	require.NoError(t, err)
	repo.inUse[st.ID] = true

	err = svc.Delete(context.Background(), st.ID)
	require.ErrorIs(t, err, pgcargo.ErrStatusInUse)

	repo.inUse[st.ID] = false
	require.NoError(t, svc.Delete(context.Background(), st.ID))
}

func TestUpdate_NotFound(t *testing.T) {
	svc := New(newFakeRepo())

	_, err := svc.Update(context.Background(), 99, models.StatusInput{Name: "X", Ord: 1})
	require.ErrorIs(t, err, pgcargo.ErrNotFound)
}
