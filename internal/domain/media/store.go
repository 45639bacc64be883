package media

import (
	"context"
	"io"
	"time"
)

// Photo es una foto subida de la cámara/galería del usuario.
type Photo struct {
	Key         string    `json:"key"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Store es el puerto de almacenamiento de fotos (S3 en prod,
// in-memory en dev). Keys namespaced por gato.
type Store interface {
	List(ctx context.Context, catID string) ([]Photo, error)
	Put(ctx context.Context, catID, fileName, contentType string, body io.Reader) (Photo, error)
	Delete(ctx context.Context, catID, key string) error
}
