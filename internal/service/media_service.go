package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	appErrors "github.com/studentaffairs/org-portal-api/pkg/errors"
)

// MediaKind selects the allow-list, bucket and persist target of an upload.
type MediaKind string

const (
	MediaEventPoster       MediaKind = "poster"
	MediaEventQR           MediaKind = "qr"
	MediaEventPhoto        MediaKind = "photos"
	MediaFundraisingPoster MediaKind = "fundraising-poster"
	MediaColorPhoto        MediaKind = "color-photo"
	MediaDonationSlip      MediaKind = "slip"
)

// ParseMediaKind maps an endpoint token to a kind.
func ParseMediaKind(token string) (MediaKind, error) {
	switch MediaKind(strings.ToLower(strings.TrimSpace(token))) {
	case MediaEventPoster:
		return MediaEventPoster, nil
	case MediaEventQR:
		return MediaEventQR, nil
	case MediaEventPhoto:
		return MediaEventPhoto, nil
	case MediaFundraisingPoster:
		return MediaFundraisingPoster, nil
	case MediaColorPhoto:
		return MediaColorPhoto, nil
	case MediaDonationSlip:
		return MediaDonationSlip, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", token)
	}
}

// MediaFile is one inbound upload.
type MediaFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type mediaBlobStore interface {
	Put(bucket, path string, data []byte, contentType string) (string, error)
}

type mediaEventWriter interface {
	SetPosterURL(ctx context.Context, id int64, url string) error
	SetPromptPayQR(ctx context.Context, id int64, url string) error
	InsertPhoto(ctx context.Context, eventID int64, url string) error
}

type mediaFundraisingWriter interface {
	SetPosterURL(ctx context.Context, id int64, url string) error
}

type mediaColorWriter interface {
	SetPhotoURL(ctx context.Context, id int64, url string) error
}

type mediaDonationWriter interface {
	SetSlipURL(ctx context.Context, id int64, url string) error
}

// MediaServiceConfig names the buckets uploads land in.
type MediaServiceConfig struct {
	MediaBucket string
	SlipBucket  string
}

// MediaService runs the two-phase publish: store the blob, then persist its
// URL on the parent record. The two stores share no transaction boundary, so
// a phase-2 failure leaves an intentional orphan blob; the error taxonomy
// distinguishes that case so callers can retry phase 2 with the URL they
// already hold.
type MediaService struct {
	blobs       mediaBlobStore
	events      mediaEventWriter
	fundraising mediaFundraisingWriter
	colors      mediaColorWriter
	donations   mediaDonationWriter
	cfg         MediaServiceConfig
	logger      *zap.Logger
	now         func() time.Time
}

// NewMediaService constructs a MediaService.
func NewMediaService(blobs mediaBlobStore, events mediaEventWriter, fundraising mediaFundraisingWriter, colors mediaColorWriter, donations mediaDonationWriter, cfg MediaServiceConfig, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MediaBucket == "" {
		cfg.MediaBucket = "media"
	}
	if cfg.SlipBucket == "" {
		cfg.SlipBucket = "slips"
	}
	return &MediaService{
		blobs:       blobs,
		events:      events,
		fundraising: fundraising,
		colors:      colors,
		donations:   donations,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

var imageMediaTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

var slipMediaTypes = map[string]struct{}{
	"image/png":       {},
	"image/jpeg":      {},
	"image/webp":      {},
	"application/pdf": {},
}

// Publish runs both phases for a single file and returns the public URL.
// On ErrPersist the returned URL is still the stored blob's location; the
// record was not updated and retrying only phase 2 is the caller's call.
func (s *MediaService) Publish(ctx context.Context, kind MediaKind, file MediaFile, targetID int64) (string, error) {
	contentType, err := s.resolveContentType(kind, file)
	if err != nil {
		return "", err
	}

	bucket := s.cfg.MediaBucket
	if kind == MediaDonationSlip {
		bucket = s.cfg.SlipBucket
	}
	path := s.storagePath(kind, file.Filename)

	url, err := s.blobs.Put(bucket, path, file.Data, contentType)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "blob storage failed")
	}

	if err := s.persist(ctx, kind, targetID, url); err != nil {
		s.logger.Warn("media persisted blob but record update failed",
			zap.String("kind", string(kind)),
			zap.Int64("target_id", targetID),
			zap.String("url", url),
			zap.Error(err))
		return url, appErrors.Wrap(err, appErrors.ErrPersist.Code, appErrors.ErrPersist.Status,
			fmt.Sprintf("blob stored at %s but the record was not updated", url))
	}

	return url, nil
}

// PublishBatch runs both phases independently per file and reports per-file
// outcomes; one bad file never fails the batch.
func (s *MediaService) PublishBatch(ctx context.Context, kind MediaKind, files []MediaFile, targetID int64) *dto.BatchUploadResult {
	result := &dto.BatchUploadResult{Items: []string{}}
	for _, file := range files {
		url, err := s.Publish(ctx, kind, file, targetID)
		if err != nil {
			result.Errors = append(result.Errors, dto.BatchUploadError{
				Filename: file.Filename,
				Reason:   err.Error(),
			})
			continue
		}
		result.Items = append(result.Items, url)
	}
	return result
}

func (s *MediaService) resolveContentType(kind MediaKind, file MediaFile) (string, error) {
	allowed := imageMediaTypes
	if kind == MediaDonationSlip {
		allowed = slipMediaTypes
	}

	declared := normalizeMediaType(file.ContentType)
	if _, ok := allowed[declared]; ok {
		return declared, nil
	}

	inferred := normalizeMediaType(mime.TypeByExtension(filepath.Ext(file.Filename)))
	if _, ok := allowed[inferred]; ok {
		return inferred, nil
	}

	return "", appErrors.Clone(appErrors.ErrValidation,
		fmt.Sprintf("unsupported media type %q for %s upload", file.ContentType, kind))
}

func (s *MediaService) persist(ctx context.Context, kind MediaKind, targetID int64, url string) error {
	switch kind {
	case MediaEventPoster:
		return s.events.SetPosterURL(ctx, targetID, url)
	case MediaEventQR:
		return s.events.SetPromptPayQR(ctx, targetID, url)
	case MediaEventPhoto:
		return s.events.InsertPhoto(ctx, targetID, url)
	case MediaFundraisingPoster:
		return s.fundraising.SetPosterURL(ctx, targetID, url)
	case MediaColorPhoto:
		return s.colors.SetPhotoURL(ctx, targetID, url)
	case MediaDonationSlip:
		return s.donations.SetSlipURL(ctx, targetID, url)
	default:
		return fmt.Errorf("unknown media kind %q", kind)
	}
}

// storagePath embeds a timestamp and a random token so paths never collide
// and no existence check is needed before the write.
func (s *MediaService) storagePath(kind MediaKind, filename string) string {
	token := uuid.NewString()[:8]
	stamp := s.now().UTC().Format("20060102T150405")
	return fmt.Sprintf("%s/%s-%s-%s", kind, stamp, token, sanitizeFilename(filename))
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

func sanitizeFilename(name string) string {
	base := strings.ToLower(filepath.Base(name))
	base = unsafeFilenameChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		return "file"
	}
	return base
}

func normalizeMediaType(raw string) string {
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return mediaType
}
