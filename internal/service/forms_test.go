//go:build !integration

package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/form"
	"github.com/guttosm/package-form/internal/testutil"
	"github.com/guttosm/package-form/internal/upstream"
)

func newTestFormService(t *testing.T, cfg FormServiceConfig) (*FormServiceImpl, *testutil.FakeUpstream) {
	t.Helper()
	fake := testutil.NewFakeUpstream(t)
	client := upstream.New(upstream.Config{BaseURL: fake.URL, Timeout: time.Second})
	svc := NewFormService(client, cfg)
	t.Cleanup(svc.Close)
	return svc, fake
}

func TestFormService_SessionMountsOnce(t *testing.T) {
	svc, _ := newTestFormService(t, FormServiceConfig{Capacity: 8, TTL: time.Minute})
	ctx := context.Background()

	first, err := svc.Session(ctx, "s-1")
	require.NoError(t, err)

	snap := first.Form.Snapshot()
	assert.True(t, snap.Mounted)
	assert.Equal(t, model.LoadLoaded, snap.Customers.State)
	assert.Len(t, snap.Customers.Items, 2)
	assert.Len(t, snap.Warehouses.Items, 2)
	assert.Len(t, snap.PackageTypes.Items, 2)

	again, err := svc.Session(ctx, "s-1")
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, svc.Active())
}

func TestFormService_SessionsAreIndependent(t *testing.T) {
	svc, _ := newTestFormService(t, FormServiceConfig{Capacity: 8, TTL: time.Minute})
	ctx := context.Background()

	a, err := svc.Session(ctx, "a")
	require.NoError(t, err)
	b, err := svc.Session(ctx, "b")
	require.NoError(t, err)

	a.Form.Open()
	a.Form.SelectCustomer("7")

	assert.True(t, a.Form.Snapshot().Open)
	assert.False(t, b.Form.Snapshot().Open)
	assert.Equal(t, model.ID(""), b.Form.Snapshot().Selection.CustomerID)
}

func TestFormService_SubmitQueuesNotification(t *testing.T) {
	svc, fake := newTestFormService(t, FormServiceConfig{Capacity: 8, TTL: time.Minute})
	ctx := context.Background()
	fake.SetCreateResponse(http.StatusBadRequest, map[string]string{"error": "Invalid warehouse"})

	sess, err := svc.Session(ctx, "s-1")
	require.NoError(t, err)

	sess.Form.Open()
	sess.Form.SelectCustomer("7")
	require.NoError(t, sess.Form.SelectWarehouse(ctx, "1"))
	sess.Form.SelectPackageType("3")

	result, err := sess.Form.Submit(ctx)
	assert.Error(t, err)
	assert.Equal(t, form.ResultRejected, result)

	assert.Equal(t, []form.Notification{{Kind: form.KindError, Message: "Invalid warehouse"}}, sess.Notifications.Drain())
	assert.True(t, sess.Form.Snapshot().Open)
	assert.Len(t, fake.Created(), 1)
}

func TestFormService_MountLoadsEmptyWarehouseTypes(t *testing.T) {
	svc, fake := newTestFormService(t, FormServiceConfig{Capacity: 8, TTL: time.Minute})

	_, err := svc.Session(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, fake.ScopedQueries())
	assert.Len(t, fake.RequestIDs(), 4)
}

func TestFormService_SkipUnscopedLoad(t *testing.T) {
	svc, fake := newTestFormService(t, FormServiceConfig{Capacity: 8, TTL: time.Minute, SkipUnscopedLoad: true})

	_, err := svc.Session(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, fake.ScopedQueries())
	assert.Len(t, fake.RequestIDs(), 3)
}

func TestFormService_MountSurvivesCancelledRequest(t *testing.T) {
	svc, _ := newTestFormService(t, FormServiceConfig{Capacity: 8, TTL: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess, err := svc.Session(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, model.LoadLoaded, sess.Form.Snapshot().Warehouses.State)
}

func TestFormService_EndUnmounts(t *testing.T) {
	svc, _ := newTestFormService(t, FormServiceConfig{Capacity: 8, TTL: time.Minute})
	ctx := context.Background()

	sess, err := svc.Session(ctx, "s-1")
	require.NoError(t, err)

	svc.End("s-1")
	assert.Equal(t, 0, svc.Active())
	assert.ErrorIs(t, sess.Form.Mount(ctx), form.ErrUnmounted)

	fresh, err := svc.Session(ctx, "s-1")
	require.NoError(t, err)
	assert.NotSame(t, sess, fresh)
}

func TestFormService_CloseUnmountsAll(t *testing.T) {
	svc, _ := newTestFormService(t, FormServiceConfig{Capacity: 8, TTL: time.Minute})
	ctx := context.Background()

	sess, err := svc.Session(ctx, "s-1")
	require.NoError(t, err)

	svc.Close()
	assert.Equal(t, 0, svc.Active())
	assert.ErrorIs(t, sess.Form.Mount(ctx), form.ErrUnmounted)
	assert.Equal(t, 0, svc.Stats().Size)
}
