package service

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/infra/blob"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

// maxUploadBytes caps project visuals at 10 MiB.
const maxUploadBytes = 10 << 20

type UploadService interface {
	Store(ctx context.Context, fh *multipart.FileHeader) (*UploadResult, error)
}

type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type uploadService struct {
	store  *blob.Store
	expire time.Duration
	log    *zap.Logger
}

func NewUploadService(store *blob.Store, cfg *config.Config, log *zap.Logger) UploadService {
	expire := time.Duration(cfg.S3.PresignExpireSec) * time.Second
	if expire <= 0 {
		expire = 15 * time.Minute
	}
	return &uploadService{store: store, expire: expire, log: log}
}

func (s *uploadService) Store(ctx context.Context, fh *multipart.FileHeader) (*UploadResult, error) {
	if fh == nil {
		return nil, apperr.New(apperr.KindValidationFailed, "file is required")
	}
	if fh.Size > maxUploadBytes {
		return nil, apperr.New(apperr.KindValidationFailed, "file exceeds 10 MiB limit")
	}
	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, apperr.New(apperr.KindValidationFailed, "only image uploads are accepted")
	}

	meta, err := s.store.UploadFormFile(ctx, "visuals", fh)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStoreUnavailable, "upload failed", err)
	}

	url, err := s.store.PresignGet(ctx, meta.Key, s.expire)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStoreUnavailable, "presign failed", err)
	}

	s.log.Sugar().Infow("visual stored", "key", meta.Key, "size", meta.SizeB)
	return &UploadResult{URL: url, Key: meta.Key}, nil
}
