package app

import "github.com/Carmen-Shannon/pixelcube/config"

// AppBuilderOption is a functional option for configuring an App.
type AppBuilderOption func(a *appImpl)

// WithConfig sets the configuration the app is built from (default config.Default()).
//
// Parameters:
//   - cfg: the configuration; it is validated by NewApp
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithConfig(cfg *config.Config) AppBuilderOption {
	return func(a *appImpl) {
		if cfg != nil {
			a.cfg = cfg
		}
	}
}
