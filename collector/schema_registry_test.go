package collector

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/tutka/types"
)

func TestSchemaRegistryCollector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/srcm/v3/clusters", r.URL.Path)
		switch r.URL.Query().Get("environment") {
		case "env-1":
			fmt.Fprint(w, `{"metadata":{},"data":[
				{"id":"lsrc-123","spec":{"package":"ESSENTIALS","cloud":"AWS","region":"us-east-2"}}
			]}`)
		case "env-2":
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Errorf("unexpected environment %q", r.URL.Query().Get("environment"))
		}
	}))
	defer server.Close()

	c := &SchemaRegistryCollector{client: testClient(server.URL)}

	resources := c.Collect(context.Background(), []types.Environment{
		{ID: "env-1", Name: "PROD-east"},
		{ID: "env-2", Name: "sandbox"},
	})

	require.Len(t, resources, 1)

	r := resources[0]
	assert.Equal(t, "lsrc-123", r.ID)
	assert.Equal(t, types.TypeSchemaRegistry, r.Type)
	// No display name in the response, id stands in
	assert.Equal(t, "lsrc-123", r.Name)
	assert.Equal(t, "AWS", r.Cloud)
	assert.Equal(t, "us-east-2", r.Region)
	assert.Equal(t, "ESSENTIALS", r.Attr("package"))
}

func TestSchemaRegistryCollector_NotFoundIsNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("environment") {
		case "env-1":
			w.WriteHeader(http.StatusNotFound)
		case "env-2":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	var buf bytes.Buffer
	oldLogger := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = oldLogger }()

	c := &SchemaRegistryCollector{client: testClient(server.URL)}

	resources := c.Collect(context.Background(), []types.Environment{
		{ID: "env-1", Name: "sandbox"},
		{ID: "env-2", Name: "PROD"},
	})

	assert.Empty(t, resources)

	// A 404 means the environment has no registry, only real failures warn
	output := buf.String()
	assert.Contains(t, output, `"environment":"env-1","message":"no schema registry in environment"`)
	assert.Contains(t, output, `"environment":"env-2","message":"listing schema registry clusters failed`)
	assert.NotContains(t, output, `"environment":"env-1","message":"listing schema registry clusters failed`)
}
