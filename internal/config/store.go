package config

// Store provides a load-modify-save transaction over the configuration
// document. Mutable state (path shortcuts, scaffolder favorites) is persisted
// by rewriting the whole file, never held as in-memory globals.
type Store struct {
	path string
}

// NewStore creates a store bound to a config file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current document.
func (s *Store) Load() (*Config, error) {
	return LoadFile(s.path)
}

// Update loads the document, applies mutate, and writes the result back.
// If mutate returns an error nothing is written.
func (s *Store) Update(mutate func(cfg *Config) error) error {
	cfg, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	if err := mutate(cfg); err != nil {
		return err
	}
	return Save(cfg, s.path)
}
