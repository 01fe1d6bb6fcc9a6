package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/univ-api/internal/models"
)

func TestDeanshipDefaultsStartDateAndGuardsCollege(t *testing.T) {
	store := newMemStore(func(d *models.Deanship) *string { return &d.ID })
	store.taken = func(conds map[string]interface{}, _ string) bool { return conds["college_id"] == collegeB }
	svc := NewDeanshipService(store, nil, nil)
	fixed := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	d, err := svc.Create(ctx, DeanshipRequest{Dean: strPtr(userA), College: strPtr(collegeA)})
	require.NoError(t, err)
	assert.Equal(t, fixed, d.StartDate)

	_, err = svc.Create(ctx, DeanshipRequest{Dean: strPtr(userB), College: strPtr(collegeB)})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.Contains(t, err.Error(), "This college already has a deanship")
}

func TestDeanshipRejectsEndBeforeStart(t *testing.T) {
	svc := NewDeanshipService(newMemStore(func(d *models.Deanship) *string { return &d.ID }), nil, nil)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)

	_, err := svc.Create(context.Background(), DeanshipRequest{
		Dean: strPtr(userA), College: strPtr(collegeA), StartDate: &start, EndDate: &end,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestDeanshipRequiresDeanAndCollege(t *testing.T) {
	svc := NewDeanshipService(newMemStore(func(d *models.Deanship) *string { return &d.ID }), nil, nil)

	_, err := svc.Create(context.Background(), DeanshipRequest{Dean: strPtr(userA)})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}
