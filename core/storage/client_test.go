package storage_test

import (
	"context"
	"testing"

	"variation-manager/core/storage"
	"variation-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "catalog").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), m, "catalog", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
		m.On("MakeBucket", mock.Anything, "catalog", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), m, "catalog", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "catalog").Return(false, assert.AnError)

		err := storage.EnsureBucket(context.Background(), m, "catalog", "")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name   string
		cfg    storage.Config
		object string
		want   string
	}{
		{"DerivedHTTP", storage.Config{Endpoint: "localhost:9000", Bucket: "catalog"}, "variations/a.png", "http://localhost:9000/catalog/variations/a.png"},
		{"DerivedHTTPS", storage.Config{Endpoint: "https://s3.example.com", UseSSL: true, Bucket: "b"}, "/x.jpg", "https://s3.example.com/b/x.jpg"},
		{"PublicURL", storage.Config{PublicURL: "https://cdn.example.com/", Bucket: "b"}, "x.jpg", "https://cdn.example.com/b/x.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.ObjectURL(tt.cfg, tt.object))
		})
	}
}
