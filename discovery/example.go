package discovery

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/prometheus/common/model"
	"github.com/spf13/afero"
)

// exampleConfigTemplate is a starter Prometheus configuration wired to
// the generated target directory. Credentials stay placeholders so the
// rendered file never carries real secrets.
const exampleConfigTemplate = `# Prometheus scrape configuration for the Confluent Cloud metrics API.
# Replace the basic_auth placeholders with a Cloud API key and secret.
global:
  scrape_interval: {{ .RefreshInterval | default "1m" }}

scrape_configs:
  - job_name: confluent-cloud
    scheme: https
    metrics_path: /v2/metrics/cloud/export
    basic_auth:
      username: <CLOUD_API_KEY>
      password: <CLOUD_API_SECRET>
    file_sd_configs:
      - files:
          - {{ .TargetGlob | squote }}
        refresh_interval: {{ .RefreshInterval | default "1m" }}
    metric_relabel_configs:
      - source_labels: [__name__]
        regex: {{ "confluent_(.*)" | squote }}
        target_label: __name__
        replacement: {{ "${1}" | squote }}
`

type exampleConfigData struct {
	TargetGlob      string
	RefreshInterval string
}

// WriteExampleConfig renders the starter scrape config to path unless
// a file already exists there, and reports whether it wrote. The file
// is a one-time scaffold, never regenerated over user edits.
func WriteExampleConfig(fs afero.Fs, path, outputDir string, refresh model.Duration) (bool, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, fmt.Errorf("stat example config %s: %w", path, err)
	}
	if exists {
		return false, nil
	}

	tmpl, err := template.New("prometheus").Funcs(sprig.TxtFuncMap()).Parse(exampleConfigTemplate)
	if err != nil {
		return false, fmt.Errorf("parse example config template: %w", err)
	}

	var buf bytes.Buffer
	data := exampleConfigData{
		TargetGlob: filepath.Join(outputDir, "*.yml"),
	}
	if refresh != 0 {
		data.RefreshInterval = refresh.String()
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return false, fmt.Errorf("render example config: %w", err)
	}

	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("write example config %s: %w", path, err)
	}
	return true, nil
}
