// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow Client interface covering what the
// variation image upload needs: bucket checks, uploads and removals. The
// abstraction supports both AWS S3 and self-hosted MinIO instances, and is
// mocked in tests through core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
//	url := storage.ObjectURL(cfg.Storage, "variations/abc/0.png")
package storage
