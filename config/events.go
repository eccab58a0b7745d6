package config

// EventsConfig controls publication of job lifecycle events over Redis pub/sub.
type EventsConfig struct {
	// Enabled toggles event publication. The API behaves identically with it
	// off; subscribers simply see nothing.
	Enabled bool `env:"ENABLED" envDefault:"true"`
}
