package config

import (
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"
)

// ServiceConfig holds the configuration for a seeding run.
type ServiceConfig struct {
	ServiceName string        `yaml:"service_name" validate:"required"`
	LogLevel    string        `yaml:"loglevel" validate:"required"`
	Tenant      TenantConfig  `yaml:"tenant" validate:"required"`
	Seed        SeedConfig    `yaml:"seed" validate:"required"`
	Import      ImportConfig  `yaml:"import"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Ledger      LedgerConfig  `yaml:"ledger"`
}

// TenantConfig identifies the identity platform tenant the run targets.
type TenantConfig struct {
	Domain            string  `yaml:"domain" validate:"required"`
	Token             string  `yaml:"token" validate:"required"`
	ConnectionName    string  `yaml:"connection_name" validate:"required"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// SeedConfig describes the synthetic records to generate.
type SeedConfig struct {
	Prefix      string `yaml:"prefix" validate:"required"`
	EmailDomain string `yaml:"email_domain" validate:"required,fqdn"`
	Count       int    `yaml:"count" validate:"required,min=1"`
	// Password is the plaintext used for every generated account. When
	// empty, AllowUsernamePasswords must be set, and each account gets
	// its username as password. Test tenants only.
	Password               string `yaml:"password"`
	AllowUsernamePasswords bool   `yaml:"allow_username_passwords"`
}

// ImportConfig tunes submission and polling.
type ImportConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxWait      time.Duration `yaml:"max_wait"`
	// ExternalID is an optional caller-supplied idempotency key for the
	// submission. GenerateExternalID creates one when none is supplied.
	ExternalID         string `yaml:"external_id"`
	GenerateExternalID bool   `yaml:"generate_external_id"`
	// PayloadDir, when set, also writes the serialized payload to
	// {dir}/{prefix}_users.json for debugging. The file contains password
	// hashes; keep it out of version control.
	PayloadDir string `yaml:"payload_dir"`
}

// MetricsConfig controls the optional /metrics endpoint served for the
// duration of the run.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
}

// LedgerConfig selects the optional run ledger backend. An empty type
// disables the ledger.
type LedgerConfig struct {
	Type string `yaml:"type" validate:"omitempty,oneof=mongo postgres"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config" validate:"omitempty"`
	// For PostgreSQL
	Postgres PostgresConfig `yaml:"postgres_config" validate:"omitempty"`
}

// MongoDBConfig holds the MongoDB ledger configuration.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections"`
	ValidFields      []string           `yaml:"valid_fields"`
}

// PostgresConfig holds the PostgreSQL ledger configuration.
type PostgresConfig struct {
	DSN     string                `yaml:"dsn"`
	Options PostgresServerOptions `yaml:"postgres_server_options"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
