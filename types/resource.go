package types

// Known resource type names from the Confluent metrics catalog.
// The catalog may grow; anything else routes to a no-op collector.
const (
	TypeKafka          = "kafka"
	TypeSchemaRegistry = "schema_registry"
	TypeKSQL           = "ksql"
	TypeConnector      = "connector"
	TypeFlink          = "flink"
)

// Label keys derived by the normalizer.
const (
	LabelComponentType   = "component_type"
	LabelServiceTier     = "service_tier"
	LabelCloudProvider   = "cloud_provider"
	LabelEnvironmentType = "environment_type"
)

// Resource represents a discovered Confluent Cloud resource (Kafka
// cluster, schema registry, ksqlDB cluster, connector, Flink compute
// pool or statement) in one uniform shape
type Resource struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Name    string            `json:"name"`
	EnvID   string            `json:"env_id"`
	EnvName string            `json:"env_name"`
	Cloud   string            `json:"cloud,omitempty"`
	Region  string            `json:"region,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Labels  map[string]string `json:"labels,omitempty"`

	// NoTelemetryID marks resources whose id was synthesized or
	// otherwise cannot be queried through the metrics API. They are
	// counted in summaries but excluded from generated target files.
	NoTelemetryID bool `json:"no_telemetry_id,omitempty"`
}

// Label returns a derived label value, or "" when unset
func (r *Resource) Label(key string) string {
	if r.Labels == nil {
		return ""
	}
	return r.Labels[key]
}

// SetLabel sets a derived label, allocating the map on first use
func (r *Resource) SetLabel(key, value string) {
	if r.Labels == nil {
		r.Labels = make(map[string]string)
	}
	r.Labels[key] = value
}

// Attr returns a type-specific attribute, or "" when unset
func (r *Resource) Attr(key string) string {
	if r.Attrs == nil {
		return ""
	}
	return r.Attrs[key]
}

// SetAttr sets a type-specific attribute, allocating the map on first use
func (r *Resource) SetAttr(key, value string) {
	if r.Attrs == nil {
		r.Attrs = make(map[string]string)
	}
	r.Attrs[key] = value
}

// Exportable checks if the resource can appear in a target file
func (r *Resource) Exportable() bool {
	return r.ID != "" && !r.NoTelemetryID
}
