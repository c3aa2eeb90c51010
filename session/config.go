package session

// Config holds session initialization parameters.
type Config struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"` // Session file; empty disables persistence.
}

// DefaultConfig returns the default session configuration (not persisted).
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
}

// New creates a Session from configuration. When Path is set the history is
// loaded from that file; a load error (ErrNotFound or ErrLoadFailed) is
// returned alongside a usable empty Session so the caller can warn and
// continue.
func New(cfg *Config) (Session, error) {
	if cfg.Path == "" {
		return NewBuffer(), nil
	}
	return Load(cfg.Path)
}
