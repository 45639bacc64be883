package s3store

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cat-care-diary/internal/domain/media"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store implementa media.Store sobre un bucket S3.
// Layout de keys: {catID}/{uuid}-{filename}.
type Store struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

// New arma el cliente S3 con la config default del SDK (env/credenciales
// de la instancia).
func New(ctx context.Context, bucket string) (*Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("s3store: bucket required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3store: load aws config: %w", err)
	}

	return &Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		now:    time.Now,
	}, nil
}

// NewWithClient permite inyectar un cliente armado (tests, endpoints custom).
func NewWithClient(client *s3.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket, now: time.Now}
}

func (s *Store) List(ctx context.Context, catID string) ([]media.Photo, error) {
	prefix := catID + "/"
	out := make([]media.Photo, 0)

	var token *string
	for {
		resp, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            &s.bucket,
			Prefix:            &prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("s3store: list: %w", err)
		}

		for _, obj := range resp.Contents {
			if obj.Key == nil {
				continue
			}
			p := media.Photo{
				Key:      *obj.Key,
				FileName: path.Base(*obj.Key),
			}
			if obj.Size != nil {
				p.Size = *obj.Size
			}
			if obj.LastModified != nil {
				p.UploadedAt = *obj.LastModified
			}
			out = append(out, p)
		}

		if resp.IsTruncated == nil || !*resp.IsTruncated {
			break
		}
		token = resp.NextContinuationToken
	}

	return out, nil
}

func (s *Store) Put(ctx context.Context, catID, fileName, contentType string, body io.Reader) (media.Photo, error) {
	key := fmt.Sprintf("%s/%s-%s", catID, uuid.NewString(), path.Base(fileName))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return media.Photo{}, fmt.Errorf("s3store: put: %w", err)
	}

	return media.Photo{
		Key:         key,
		FileName:    fileName,
		ContentType: contentType,
		UploadedAt:  s.now(),
	}, nil
}

func (s *Store) Delete(ctx context.Context, catID, key string) error {
	// El key ya viene namespaced; validamos que pertenezca al gato.
	if !strings.HasPrefix(key, catID+"/") {
		return media.ErrPhotoNotFound
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("s3store: delete: %w", err)
	}
	return nil
}
