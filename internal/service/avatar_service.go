package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/storage"
)

type avatarUserStore interface {
	FindAccount(ctx context.Context, id string) (*models.User, error)
	UpdateProfileImage(ctx context.Context, id, key string, ts time.Time) error
}

type blobStore interface {
	Put(key string, r io.Reader) (int64, error)
	Open(key string) (*os.File, error)
	Remove(key string) error
}

type urlSigner interface {
	Sign(subject, key string) (string, time.Time, error)
	Verify(token string) (subject, key string, err error)
}

// AvatarConfig bounds uploads and sets where download links point.
type AvatarConfig struct {
	MaxFileSize  int64
	AllowedMIMEs []string
	// DownloadBase is the absolute prefix of the file route, e.g. https://host/api/v1/files.
	DownloadBase string
}

// AvatarLink is a signed, expiring URL for a stored profile image.
type AvatarLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AvatarService stores profile images and hands out signed download links.
type AvatarService struct {
	users   avatarUserStore
	files   blobStore
	signer  urlSigner
	cfg     AvatarConfig
	allowed map[string]struct{}
	logger  *zap.Logger
	now     func() time.Time
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// NewAvatarService constructs the service. Without a size limit uploads are capped at 5MB.
func NewAvatarService(users avatarUserStore, files blobStore, signer urlSigner, cfg AvatarConfig, logger *zap.Logger) *AvatarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 5 << 20
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, m := range cfg.AllowedMIMEs {
		allowed[m] = struct{}{}
	}
	return &AvatarService{
		users:   users,
		files:   files,
		signer:  signer,
		cfg:     cfg,
		allowed: allowed,
		logger:  logger,
		now:     time.Now,
	}
}

// Upload sniffs the image type, stores the bytes and points the user's profile at them.
// The previous image is removed once the new one is recorded.
func (s *AvatarService) Upload(ctx context.Context, userID string, r io.Reader) (*AvatarLink, error) {
	user, err := s.account(ctx, userID)
	if err != nil {
		return nil, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return nil, appErrors.Validation("invalid profile image", appErrors.FieldError{Field: "image", Message: "file is empty"})
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	head = head[:n]

	mimeType := http.DetectContentType(head)
	ext, known := imageExtensions[mimeType]
	if _, ok := s.allowed[mimeType]; !ok || !known {
		return nil, appErrors.Validation("invalid profile image", appErrors.FieldError{Field: "image", Message: "unsupported file type " + mimeType})
	}

	key := path.Join("avatars", user.ID, uuid.NewString()+ext)
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.cfg.MaxFileSize+1)
	written, err := s.files.Put(key, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store profile image")
	}
	if written > s.cfg.MaxFileSize {
		s.discard(key)
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, "profile image exceeds the upload limit")
	}

	if err := s.users.UpdateProfileImage(ctx, user.ID, key, s.now().UTC()); err != nil {
		s.discard(key)
		return nil, appErrors.Ensure(err, "failed to update profile image")
	}
	if user.ProfileImg != "" && user.ProfileImg != key {
		s.discard(user.ProfileImg)
	}
	return s.link(user.ID, key)
}

// Link returns a fresh signed URL for the user's current profile image.
func (s *AvatarService) Link(ctx context.Context, userID string) (*AvatarLink, error) {
	user, err := s.account(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfileImg == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "User has no profile image")
	}
	return s.link(user.ID, user.ProfileImg)
}

// Open resolves a signed token to the stored file.
func (s *AvatarService) Open(token string) (*os.File, error) {
	_, key, err := s.signer.Verify(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "download link has expired")
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}
	f, err := s.files.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "File not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	return f, nil
}

func (s *AvatarService) account(ctx context.Context, userID string) (*models.User, error) {
	if err := guard.ValidateID("id", userID); err != nil {
		return nil, err
	}
	user, err := s.users.FindAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return nil, appErrors.Ensure(err, "failed to load user")
	}
	return user, nil
}

func (s *AvatarService) link(subject, key string) (*AvatarLink, error) {
	token, expires, err := s.signer.Sign(subject, key)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	return &AvatarLink{URL: s.cfg.DownloadBase + "/" + token, ExpiresAt: expires}, nil
}

func (s *AvatarService) discard(key string) {
	if err := s.files.Remove(key); err != nil {
		s.logger.Warn("failed to remove stored file", zap.String("key", key), zap.Error(err))
	}
}
