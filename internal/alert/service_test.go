package alert

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
	alerts map[string]*Alert
	seq    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{alerts: map[string]*Alert{}}
}

func (r *fakeRepo) Create(_ context.Context, a *Alert) error {
	r.seq++
	a.ID = fmt.Sprintf("alert-%d", r.seq)
	a.CreatedAt = time.Now()
	copied := *a
	r.alerts[a.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Alert, error) {
	a, ok := r.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Alert, int, error) {
	var out []*Alert
	for _, a := range r.alerts {
		if filter.UnreadOnly && a.IsRead {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepo) MarkRead(_ context.Context, id string) error {
	a, ok := r.alerts[id]
	if !ok {
		return ErrNotFound
	}
	a.IsRead = true
	return nil
}

func (r *fakeRepo) MarkAllRead(_ context.Context) error {
	for _, a := range r.alerts {
		a.IsRead = true
	}
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.alerts[id]; !ok {
		return ErrNotFound
	}
	delete(r.alerts, id)
	return nil
}

func (r *fakeRepo) RecentSevere(_ context.Context, limit int) ([]*Alert, error) {
	var out []*Alert
	for _, a := range r.alerts {
		if a.Type == TypeWarning || a.Type == TypeError {
			copied := *a
			out = append(out, &copied)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepo) PurgeByBeach(_ context.Context, beachID string) error {
	for id, a := range r.alerts {
		if a.BeachID != nil && *a.BeachID == beachID {
			delete(r.alerts, id)
		}
	}
	return nil
}

func TestCreateDefaultsToInfo(t *testing.T) {
	svc := NewService(newFakeRepo())

	a, err := svc.Create(context.Background(), CreateInput{Message: "season opened"})
	require.NoError(t, err)
	assert.Equal(t, TypeInfo, a.Type)
	assert.False(t, a.IsRead)

	var appErr *apperror.AppError
	_, err = svc.Create(context.Background(), CreateInput{})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.Create(context.Background(), CreateInput{Message: "x", Type: "critical"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestMarkReadFlow(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	a, err := svc.Create(context.Background(), CreateInput{Message: "pump failure", Type: TypeError})
	require.NoError(t, err)

	read, err := svc.MarkRead(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	_, err = svc.MarkRead(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), CreateInput{Message: "another"})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAllRead(context.Background()))

	unread, _, err := svc.List(context.Background(), Filter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestErrorLogNamesSources(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	beachID := "beach-1"
	_, err := svc.Create(context.Background(), CreateInput{Message: "storm warning", Type: TypeWarning, BeachID: &beachID})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Message: "payment sync failed", Type: TypeError})
	require.NoError(t, err)
	// Info alerts stay out of the error log.
	_, err = svc.Create(context.Background(), CreateInput{Message: "season opened"})
	require.NoError(t, err)

	entries, err := svc.ErrorLog(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	bySource := map[string]LogEntry{}
	for _, e := range entries {
		bySource[e.Source] = e
	}
	assert.Equal(t, "warning", bySource["beach:beach-1"].Level)
	assert.Equal(t, "system", bySource["system"].Source)
	assert.Equal(t, "payment sync failed", bySource["system"].Message)
}
