// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which defines its name, whether
// it is enabled and how it registers routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps registered features in order and loads the enabled ones with
// LoadAll, rejecting duplicate names.
package loader
