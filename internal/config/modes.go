package config

// FeatureMode reports whether an optional integration is usable.
type FeatureMode int

// Feature modes. Unconfigured features degrade to an explicit error instead of failing startup.
const (
	Unconfigured FeatureMode = iota
	Configured
)

func (m FeatureMode) String() string {
	if m == Configured {
		return "configured"
	}
	return "unconfigured"
}

// Modes is the deployment state derived from configuration.
type Modes struct {
	Provider FeatureMode // quote provider credential present
	News     FeatureMode // news provider credential present
	Pages    FeatureMode // login/dashboard pages (need a session Redis)
	Storage  string      // StorageDriverPostgres or StorageDriverMemory
	Ingest   string      // IngestModeInline or IngestModeQueue
}

// Modes derives the deployment modes from the loaded configuration.
func (c *Config) Modes() Modes {
	return Modes{
		Provider: modeOf(c.AlphaVantage.APIKey != ""),
		News:     modeOf(c.News.APIKey != ""),
		Pages:    modeOf(c.Redis.SessionAddr != ""),
		Storage:  c.Storage.Driver,
		Ingest:   c.Ingest.Mode,
	}
}

func modeOf(ok bool) FeatureMode {
	if ok {
		return Configured
	}
	return Unconfigured
}
