package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// SourceRef identifies one remote tabular resource. Key() is the cache
// identity for loaded snapshots.
type SourceRef struct {
	Kind      string `mapstructure:"kind"` // csv | xlsx | postgres | s3
	Path      string `mapstructure:"path"` // file path, object key or table name
	Worksheet string `mapstructure:"worksheet"`
	DSN       string `mapstructure:"dsn"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Branch    string `mapstructure:"branch"`
}

func (r SourceRef) Key() string {
	parts := []string{r.Kind, r.DSN, r.Bucket, r.Path, r.Worksheet, r.Branch}
	return strings.Join(parts, "|")
}

// ProfileConfig is the business-rule bundle of one source profile. The sheet
// revisions disagreed about several formulas; every flag here is
// independently meaningful and must never collapse into branching on caller
// identity.
type ProfileConfig struct {
	// AdjustmentColumn names the extra numeric column ("50/10") deducted
	// from the COD total. Empty means no adjustment for this profile.
	AdjustmentColumn string `mapstructure:"adjustment_column"`

	// IncludeComplaintStaffPRInGross widens the gross total to the entire
	// filtered set; when false, gross covers valid invoices only.
	IncludeComplaintStaffPRInGross bool `mapstructure:"include_complaint_staff_pr_in_gross"`

	// NetCODOfCancellationsAtStep4 subtracts cancelled COD amounts from the
	// COD total before the final net is computed.
	NetCODOfCancellationsAtStep4 bool `mapstructure:"net_cod_of_cancellations_at_step4"`

	// SubsecondTimeAverages renders time averages with two decimal places
	// of sub-second precision instead of integer seconds.
	SubsecondTimeAverages bool `mapstructure:"subsecond_time_averages"`
}

// Profile bundles a source reference with its business rules and a display
// label, selected once per session by caller identity.
type Profile struct {
	Source  SourceRef     `mapstructure:"source"`
	Display string        `mapstructure:"display"`
	Rules   ProfileConfig `mapstructure:"rules"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Profiles maps normalized (lowercase) identity to a profile.
	Profiles map[string]Profile `mapstructure:"profiles"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`

	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"` // console | json | csv | parquet
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
}

// ResolveProfile looks up the profile for a caller identity. Identities are
// matched lowercase; credential storage and session timeout live elsewhere.
func (cfg *Config) ResolveProfile(identity string) (Profile, bool) {
	p, ok := cfg.Profiles[strings.ToLower(strings.TrimSpace(identity))]
	return p, ok
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("cache_ttl", "10m")
	viper.SetDefault("output_format", "console")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("kafka_topic", "metrics_reports")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	// Profile identities match lowercase regardless of config casing.
	profiles := make(map[string]Profile, len(config.Profiles))
	for identity, p := range config.Profiles {
		profiles[strings.ToLower(identity)] = p
	}
	config.Profiles = profiles

	return &config, nil
}
