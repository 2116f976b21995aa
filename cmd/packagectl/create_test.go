package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/form"
	"github.com/guttosm/package-form/internal/testutil"
	"github.com/guttosm/package-form/internal/upstream"
)

func TestCreate_Success(t *testing.T) {
	fake := testutil.NewFakeUpstream(t)

	res := execute(t, "create", "--customer", "7", "--warehouse", "2", "--package-type", "3", "--base-url", fake.URL)

	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "Package stored\n", res.stdout)
	assert.Equal(t, []model.PackagePayload{
		{WarehouseID: "2", CustomerID: "7", PackageTypeID: "3"},
	}, fake.Created())
	assert.Equal(t, []string{"", "2"}, fake.ScopedQueries())
}

func TestCreate_JSON(t *testing.T) {
	fake := testutil.NewFakeUpstream(t)

	res := execute(t, "create", "--customer", "8", "--warehouse", "1", "--package-type", "4", "--json", "--base-url", fake.URL)
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var view createView
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &view))
	assert.Equal(t, createView{
		Result:    form.ResultCreated,
		Message:   "Package stored",
		Selection: model.Selection{CustomerID: "8", WarehouseID: "1", PackageTypeID: "4"},
	}, view)
}

func TestCreate_EmptySuccessMessage(t *testing.T) {
	fake := testutil.NewFakeUpstream(t)
	fake.SetCreateResponse(http.StatusCreated, gin.H{})

	res := execute(t, "create", "--customer", "7", "--warehouse", "1", "--package-type", "3", "--base-url", fake.URL)

	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, defaultSuccessMessage+"\n", res.stdout)
}

func TestCreate_Failures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*testutil.FakeUpstream)
		args        []string
		wantCode    int
		wantStderr  []string
		wantCreated int
	}{
		{
			name:        "incomplete selection",
			args:        []string{"--customer", "7"},
			wantCode:    exitUserError,
			wantStderr:  []string{"missing warehouse_id, package_type_id"},
			wantCreated: 0,
		},
		{
			name:       "unknown customer",
			args:       []string{"--customer", "99", "--warehouse", "1", "--package-type", "3"},
			wantCode:   exitUserError,
			wantStderr: []string{`customers: "99" is not offered`},
		},
		{
			name: "sold out package type",
			setup: func(f *testutil.FakeUpstream) {
				f.SetScopedPackageTypes("2", []model.PackageType{{ID: "3", Name: "Small box", AvailableCapacity: floatPtr(0)}})
			},
			args:       []string{"--customer", "7", "--warehouse", "2", "--package-type", "3"},
			wantCode:   exitUserError,
			wantStderr: []string{`package-types: "3" is not offered`},
		},
		{
			name:       "warehouse list unavailable",
			setup:      func(f *testutil.FakeUpstream) { f.FailNext("/api/Warehouse", 1) },
			args:       []string{"--customer", "7", "--warehouse", "2", "--package-type", "3"},
			wantCode:   exitSysError,
			wantStderr: []string{"could not load warehouses"},
		},
		{
			name:       "package types unavailable for warehouse",
			setup:      func(f *testutil.FakeUpstream) { f.FailNext("/api/PackageTypes", 3) },
			args:       []string{"--customer", "7", "--warehouse", "2", "--package-type", "3"},
			wantCode:   exitSysError,
			wantStderr: []string{"could not load package-types"},
		},
		{
			name: "rejected",
			setup: func(f *testutil.FakeUpstream) {
				f.SetCreateResponse(http.StatusConflict, gin.H{"error": "Warehouse is full"})
			},
			args:        []string{"--customer", "7", "--warehouse", "1", "--package-type", "3"},
			wantCode:    exitUserError,
			wantStderr:  []string{"error: Warehouse is full\n", "packagectl: package not created (rejected)"},
			wantCreated: 1,
		},
		{
			name: "upstream error",
			setup: func(f *testutil.FakeUpstream) {
				f.SetCreateResponse(http.StatusInternalServerError, gin.H{"error": "database down"})
			},
			args:        []string{"--customer", "7", "--warehouse", "1", "--package-type", "3"},
			wantCode:    exitSysError,
			wantStderr:  []string{"error: database down\n"},
			wantCreated: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeUpstream(t)
			if tt.setup != nil {
				tt.setup(fake)
			}

			args := append([]string{"create", "--base-url", fake.URL}, tt.args...)
			res := execute(t, args...)

			assert.Equal(t, tt.wantCode, res.code)
			assert.Empty(t, res.stdout)
			for _, want := range tt.wantStderr {
				assert.Contains(t, res.stderr, want)
			}
			assert.Len(t, fake.Created(), tt.wantCreated)
		})
	}
}

func TestCreate_RejectedJSON(t *testing.T) {
	fake := testutil.NewFakeUpstream(t)
	fake.SetCreateResponse(http.StatusBadRequest, gin.H{"error": "Unknown customer"})

	res := execute(t, "create", "--customer", "7", "--warehouse", "1", "--package-type", "3", "--json", "--base-url", fake.URL)

	assert.Equal(t, exitUserError, res.code)
	var view createView
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &view))
	assert.Equal(t, form.ResultRejected, view.Result)
	assert.Equal(t, "Unknown customer", view.Message)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "usage", err: usageErrorf("bad flag"), want: exitUserError},
		{name: "list", err: &listError{lists: []string{listCustomers}}, want: exitSysError},
		{name: "rejected", err: &submitError{result: form.ResultRejected, err: &upstream.RejectedError{Code: 409, Message: "full"}}, want: exitUserError},
		{name: "outage", err: &submitError{result: form.ResultFailed, err: errors.New("connection refused")}, want: exitSysError},
		{name: "wrapped list", err: fmt.Errorf("options: %w", &listError{lists: []string{listWarehouses}}), want: exitSysError},
		{name: "other", err: errors.New("unknown flag: --nope"), want: exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestTerminalNotifier(t *testing.T) {
	var out, errOut bytes.Buffer
	n := terminalNotifier{out: &out, errOut: &errOut}

	n.Notify(form.KindSuccess, "Package stored")
	n.Notify(form.KindSuccess, "")
	n.Notify(form.KindError, "Warehouse is full")

	assert.Equal(t, "Package stored\n"+defaultSuccessMessage+"\n", out.String())
	assert.Equal(t, "error: Warehouse is full\n", errOut.String())
}
