package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

type fakeRepo struct {
	integrations map[string]*Integration
	seq          int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{integrations: map[string]*Integration{}}
}

func (r *fakeRepo) Create(_ context.Context, in *Integration) error {
	r.seq++
	in.ID = fmt.Sprintf("integration-%d", r.seq)
	in.CreatedAt = time.Now()
	in.UpdatedAt = in.CreatedAt
	copied := *in
	r.integrations[in.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Integration, error) {
	in, ok := r.integrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *in
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context) ([]*Integration, error) {
	var out []*Integration
	for _, in := range r.integrations {
		copied := *in
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, in *Integration) error {
	if _, ok := r.integrations[in.ID]; !ok {
		return ErrNotFound
	}
	copied := *in
	r.integrations[in.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.integrations[id]; !ok {
		return ErrNotFound
	}
	delete(r.integrations, id)
	return nil
}

func TestCreateRequiresNameTypeAndKey(t *testing.T) {
	svc := NewService(newFakeRepo())
	var appErr *apperror.AppError

	_, err := svc.Create(context.Background(), CreateInput{Name: "Weather", Type: "weather"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	in, err := svc.Create(context.Background(), CreateInput{Name: "Weather", Type: "weather", APIKey: "key-123"})
	require.NoError(t, err)
	assert.NotEmpty(t, in.ID)
	assert.NotNil(t, in.Settings)
}

func TestToggleFlipsEnabled(t *testing.T) {
	svc := NewService(newFakeRepo())

	in, err := svc.Create(context.Background(), CreateInput{Name: "Maps", Type: "maps", APIKey: "key"})
	require.NoError(t, err)
	require.False(t, in.Enabled)

	on, err := svc.Toggle(context.Background(), in.ID)
	require.NoError(t, err)
	assert.True(t, on.Enabled)

	off, err := svc.Toggle(context.Background(), in.ID)
	require.NoError(t, err)
	assert.False(t, off.Enabled)
}

func TestStateReflectsEnabledIntegrations(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateInput{Name: "Weather", Type: "Weather", APIKey: "k", Enabled: true})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Name: "Maps", Type: "maps", APIKey: "k", Enabled: false})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Name: "Payments", Type: "payment", Provider: "Stripe", APIKey: "k", Enabled: true})
	require.NoError(t, err)

	state, err := svc.State(context.Background())
	require.NoError(t, err)

	assert.True(t, state.Weather)
	assert.False(t, state.Maps, "disabled integrations stay off")
	assert.True(t, state.Stripe)
	assert.False(t, state.PayPal)
}

func TestUpdatePartialFields(t *testing.T) {
	svc := NewService(newFakeRepo())

	in, err := svc.Create(context.Background(), CreateInput{Name: "Payments", Type: "payment", Provider: "stripe", APIKey: "old"})
	require.NoError(t, err)

	key := "new-key"
	updated, err := svc.Update(context.Background(), in.ID, UpdateInput{APIKey: &key})
	require.NoError(t, err)
	assert.Equal(t, "new-key", updated.APIKey)
	assert.Equal(t, "Payments", updated.Name)

	empty := ""
	var appErr *apperror.AppError
	_, err = svc.Update(context.Background(), in.ID, UpdateInput{APIKey: &empty})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.Update(context.Background(), "missing", UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}
