package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopesEqualIgnoresStorageKeys(t *testing.T) {
	goBody := []byte(`{"status":"success","results":1,"total":1,"page":1,"totalPages":1,"data":[{"id":"0b6e","code":"CS101","createdAt":"2024-01-01"}]}`)
	legacyBody := []byte(`{"status":"success","results":1,"page":1,"totalPages":1,"data":[{"_id":"65ab","__v":0,"code":"CS101"}]}`)

	assert.True(t, envelopesEqual(goBody, legacyBody))
}

func TestEnvelopesEqualDetectsPagingDrift(t *testing.T) {
	a := []byte(`{"status":"success","results":2,"page":2,"totalPages":3,"data":[]}`)
	b := []byte(`{"status":"success","results":2,"page":2,"totalPages":2,"data":[]}`)

	assert.False(t, envelopesEqual(a, b))
	assert.False(t, envelopesEqual(a, []byte("not json")))
}

func TestEnvelopesEqualErrorsCompareStatusOnly(t *testing.T) {
	a := []byte(`{"status":"fail","error":{"code":"PAGE_NOT_FOUND","message":"This page does not exist"}}`)
	b := []byte(`{"status":"fail","message":"This page does not exist"}`)

	assert.True(t, envelopesEqual(a, b))
}

func TestCompareTargetAndReport(t *testing.T) {
	goSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","results":0,"page":1,"totalPages":0,"data":[]}`))
	}))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"fail"}`))
	}))
	defer legacySrv.Close()

	comp := compareTarget(context.Background(), goSrv.Client(), goSrv.URL, legacySrv.URL, target{Path: "courses", Critical: true})
	require.NoError(t, comp.Error)
	assert.False(t, comp.StatusMatch)

	var out bytes.Buffer
	breaking, optional := printReport(&out, []comparison{comp})
	assert.Equal(t, 1, breaking)
	assert.Equal(t, 0, optional)
	assert.Contains(t, out.String(), "[DIFF]")
}
