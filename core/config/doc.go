// Package config provides configuration management for the variation manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (loaded with godotenv). Defaults live next to each field in
// `default` struct tags and are registered by reflection, so every key can be
// overridden through the environment (SERVER_PORT, VARIATION_SESSION_TTL_MINUTES).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit
//   - Database: draft database driver and connection details
//   - Storage: S3/MinIO credentials, bucket and public URL for images
//   - Log: logging level and format
//   - Variation: session TTL, image prefix and size limit, default companies
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
