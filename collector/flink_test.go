package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/tutka/types"
)

func TestFlinkCollector_PoolsAndStatements(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/org/v2/environments/env-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"id": "env-1",
			"metadata": {"resource_name": "crn://confluent.cloud/organization=org-uuid-1/environment=env-1"}
		}`)
	})
	mux.HandleFunc("/fcpm/v2/compute-pools", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"metadata":{},"data":[
			{"id":"lfcp-111","spec":{"display_name":"analytics-pool","cloud":"AWS","region":"us-east-1","max_cfu":10},"status":{"phase":"PROVISIONED","current_cfu":2}}
		]}`)
	})
	mux.HandleFunc("/sql/v1/organizations/org-uuid-1/environments/env-1/statements", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"metadata":{},"data":[
			{"name":"orders-agg","spec":{"compute_pool_id":"lfcp-111"},"status":{"phase":"RUNNING"}},
			{"spec":{"compute_pool_id":"lfcp-111"}}
		]}`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c := &FlinkCollector{client: testClient(server.URL)}

	resources := c.Collect(context.Background(), []types.Environment{{ID: "env-1", Name: "PROD"}})

	// One pool plus one statement; the nameless statement is dropped
	require.Len(t, resources, 2)

	pool := resources[0]
	assert.Equal(t, "lfcp-111", pool.ID)
	assert.Equal(t, types.TypeFlink, pool.Type)
	assert.Equal(t, "analytics-pool", pool.Name)
	assert.Equal(t, "AWS", pool.Cloud)
	assert.Equal(t, "compute_pool", pool.Attr("flink_resource"))
	assert.Equal(t, "10", pool.Attr("max_cfu"))
	assert.Equal(t, "2", pool.Attr("current_cfu"))

	stmt := resources[1]
	assert.Equal(t, "orders-agg", stmt.ID)
	assert.Equal(t, "orders-agg", stmt.Name)
	assert.Equal(t, "", stmt.Cloud)
	assert.Equal(t, "statement", stmt.Attr("flink_resource"))
	assert.Equal(t, "lfcp-111", stmt.Attr("compute_pool"))
	assert.Equal(t, "RUNNING", stmt.Attr("phase"))
	assert.False(t, stmt.NoTelemetryID)
}

func TestFlinkCollector_OrgLookupFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/org/v2/environments/env-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/fcpm/v2/compute-pools", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"metadata":{},"data":[
			{"id":"lfcp-222","spec":{"display_name":"pool","cloud":"GCP","region":"europe-west1"}}
		]}`)
	})
	mux.HandleFunc("/sql/", func(w http.ResponseWriter, r *http.Request) {
		t.Error("statements must not be fetched without an organization id")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c := &FlinkCollector{client: testClient(server.URL)}

	resources := c.Collect(context.Background(), []types.Environment{{ID: "env-1", Name: "PROD"}})

	require.Len(t, resources, 1)
	assert.Equal(t, "lfcp-222", resources[0].ID)
	assert.Equal(t, "compute_pool", resources[0].Attr("flink_resource"))
}
