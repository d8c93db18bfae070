package variation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"variation-manager/core/storage"
	"variation-manager/core/store"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	// ErrStorageDisabled is returned when no image storage is configured.
	ErrStorageDisabled = errors.New("image storage is disabled")
	// ErrImageTooLarge is returned for uploads above the configured limit.
	ErrImageTooLarge = errors.New("image is too large")
	// ErrUnsupportedImage is returned for files that are not images.
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrUploadInProgress is returned when the combination is already uploading.
	ErrUploadInProgress = errors.New("image upload already in progress")
	// ErrCombinationGone is returned when the combination disappeared while
	// its image was uploading.
	ErrCombinationGone = errors.New("combination no longer exists")
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ImageUpload is an image file sent for one combination.
type ImageUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// UploadImage stores an image for the combination at index and sets its
// image URL. The session is not locked while the object is written; the URL is
// applied to the combination with the same key once the upload finishes, so
// facet edits made meanwhile do not misplace it.
func (s *Service) UploadImage(ctx context.Context, id string, index int, img ImageUpload) (*Snapshot, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}

	ext := strings.ToLower(path.Ext(img.Filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}
	if s.cfg.MaxImageBytes > 0 && img.Size > s.cfg.MaxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, img.Size, s.cfg.MaxImageBytes)
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	combos := sess.store.Combinations()
	if index < 0 || index >= len(combos) {
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", store.ErrIndexOutOfRange, index)
	}
	key := combos[index].CombinationKey
	if sess.uploading[key] {
		sess.mu.Unlock()
		return nil, ErrUploadInProgress
	}
	sess.uploading[key] = true
	sess.mu.Unlock()

	object := path.Join(s.cfg.ImagePrefix, sess.ID, fmt.Sprintf("%d-%s%s", index, uuid.NewString(), ext))
	_, putErr := s.client.PutObject(ctx, s.storageCfg.Bucket, object, img.Body, img.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	delete(sess.uploading, key)

	if putErr != nil {
		s.logger.Error("Image upload failed",
			zap.String("session", sess.ID),
			zap.String("object", object),
			zap.Error(putErr),
		)
		return nil, fmt.Errorf("failed to upload image: %w", putErr)
	}

	target := -1
	for i, c := range sess.store.Combinations() {
		if c.CombinationKey == key {
			target = i
			break
		}
	}
	if target < 0 {
		if err := s.client.RemoveObject(ctx, s.storageCfg.Bucket, object, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("Failed to remove orphaned image", zap.String("object", object), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %q", ErrCombinationGone, key)
	}

	url := storage.ObjectURL(s.storageCfg, object)
	if err := sess.store.UpdateField(target, store.FieldImageURL, url); err != nil {
		return nil, err
	}

	s.logger.Info("Image uploaded",
		zap.String("session", sess.ID),
		zap.String("key", key),
		zap.String("object", object),
		zap.Int64("size", img.Size),
	)
	return sess.snapshot(), nil
}
