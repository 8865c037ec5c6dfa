package config

// Elasticsearch is the config of Elasticsearch
type Elasticsearch struct {
	Addresses []string `koanf:"addresses"` // A list of Elasticsearch nodes to use.
	Username  string   `koanf:"username"`  // Username for HTTP Basic Authentication.
	Password  string   `koanf:"password"`  // Password for HTTP Basic Authentication.
	Index     string   `koanf:"index"`     // Index prefix of the exported traffic; the day is appended.

	CloudID                string `koanf:"cloud_id"`                // Endpoint for the Elastic Service (https://elastic.co/cloud).
	APIKey                 string `koanf:"api_key"`                 // Base64-encoded token for authorization; if set, overrides username/password and service token.
	ServiceToken           string `koanf:"service_token"`           // Service token for authorization; if set, overrides username/password.
	CertificateFingerprint string `koanf:"certificate_fingerprint"` // SHA256 hex fingerprint given by Elasticsearch on first launch.
}

// Storage kinds of the traffic export.
const (
	StorageNone          = "none"
	StorageStdout        = "stdout"
	StorageElasticsearch = "elasticsearch"
)

// Storage is the config of the optional traffic export.
type Storage struct {
	Kind          string        `koanf:"kind"`            // One of none, stdout and elasticsearch.
	SkipJSONPaths []string      `koanf:"skip_json_paths"` // JSON paths removed from exported bodies.
	SamplePercent uint          `koanf:"sample_percent"`  // Percentage of the intercepted requests exported, 0 meaning all.
	Elasticsearch Elasticsearch `koanf:"elasticsearch"`
}
