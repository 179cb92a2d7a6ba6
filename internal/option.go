package internal

// Option adjusts the application before Run starts it.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig supplies the configuration Run operates on.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
