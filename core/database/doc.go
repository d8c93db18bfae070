// Package database handles the optional draft database connection.
//
// It wraps GORM to open MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration, and offers a small schema
// inspector used to verify the variation_drafts table after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Draft persistence disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "variation_drafts", []string{"facets"})
package database
