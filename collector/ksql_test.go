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

func TestKSQLCollector_Sentinels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ksqldbcm/v2/clusters", r.URL.Path)
		fmt.Fprint(w, `{"metadata":{},"data":[
			{"id":"lksqlc-111","spec":{"display_name":"clickstream","csu":4,"kafka_cluster":{"id":"lkc-111"}},"status":{"phase":"PROVISIONED"}},
			{"spec":{"csu":1}},
			{"id":"lksqlc-222","spec":{}}
		]}`)
	}))
	defer server.Close()

	c := &KSQLCollector{client: testClient(server.URL)}

	resources := c.Collect(context.Background(), []types.Environment{{ID: "env-1", Name: "PROD"}})

	require.Len(t, resources, 3)

	assert.Equal(t, "lksqlc-111", resources[0].ID)
	assert.Equal(t, "clickstream", resources[0].Name)
	assert.Equal(t, "lkc-111", resources[0].Attr("kafka_cluster"))
	assert.Equal(t, "4", resources[0].Attr("csu"))
	assert.False(t, resources[0].NoTelemetryID)

	// Missing id gets a synthesized one and is flagged
	assert.Equal(t, "unknown-1", resources[1].ID)
	assert.Equal(t, "Unknown KSQL Cluster", resources[1].Name)
	assert.True(t, resources[1].NoTelemetryID)

	// Missing display name only gets the sentinel name
	assert.Equal(t, "lksqlc-222", resources[2].ID)
	assert.Equal(t, "Unknown KSQL Cluster", resources[2].Name)
	assert.False(t, resources[2].NoTelemetryID)
}

func TestKSQLCollector_SynthesizedIDsUniqueAcrossEnvironments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Each environment holds one cluster the API returns without an id
		fmt.Fprint(w, `{"metadata":{},"data":[
			{"spec":{"display_name":"no-id"}}
		]}`)
	}))
	defer server.Close()

	c := &KSQLCollector{client: testClient(server.URL)}

	resources := c.Collect(context.Background(), []types.Environment{
		{ID: "env-1", Name: "PROD"},
		{ID: "env-2", Name: "staging"},
	})

	require.Len(t, resources, 2)

	// The counter spans the whole collection: ids never repeat between
	// environments
	assert.Equal(t, "unknown-1", resources[0].ID)
	assert.Equal(t, "unknown-2", resources[1].ID)
	assert.True(t, resources[0].NoTelemetryID)
	assert.True(t, resources[1].NoTelemetryID)
}

func TestKSQLCollector_MalformedDropsEnvironment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("environment") {
		case "env-1":
			// One good cluster, then garbage: the whole environment drops
			fmt.Fprint(w, `{"metadata":{},"data":[
				{"id":"lksqlc-111","spec":{"display_name":"good"}},
				42
			]}`)
		case "env-2":
			fmt.Fprint(w, `{"metadata":{},"data":[
				{"id":"lksqlc-222","spec":{"display_name":"kept"}}
			]}`)
		}
	}))
	defer server.Close()

	c := &KSQLCollector{client: testClient(server.URL)}

	resources := c.Collect(context.Background(), []types.Environment{
		{ID: "env-1", Name: "PROD"},
		{ID: "env-2", Name: "staging"},
	})

	require.Len(t, resources, 1)
	assert.Equal(t, "lksqlc-222", resources[0].ID)
	assert.Equal(t, "env-2", resources[0].EnvID)
}
