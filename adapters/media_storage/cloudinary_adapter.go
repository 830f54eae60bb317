package media_storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/internal/application/service"
	"github.com/khoahotran/talent-profile/internal/config"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

// Resumes are stored as raw assets so Cloudinary keeps the document as is.
const resourceTypeRaw = "raw"

// Without an "existing" flag, an upload answered with an asset older than
// this was already there.
const collisionSkew = time.Minute

var versionSegment = regexp.MustCompile(`^v\d+$`)

type cloudinaryAdapter struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	folder    string
	logger    logger.Logger
}

func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.Uploader, error) {

	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	log.Info("Connect Cloudinary successfully.", zap.String("cloud_name", cfg.Cloudinary.CloudName), zap.String("folder", cfg.Cloudinary.Folder))
	return &cloudinaryAdapter{
		cld:       cld,
		cloudName: cfg.Cloudinary.CloudName,
		folder:    strings.Trim(cfg.Cloudinary.Folder, "/"),
		logger:    log,
	}, nil
}

func (a *cloudinaryAdapter) publicID(key string) string {
	if a.folder == "" {
		return key
	}
	return path.Join(a.folder, key)
}

func (a *cloudinaryAdapter) Upload(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error) {
	started := time.Now()
	uploadParams := uploader.UploadParams{
		PublicID:       a.publicID(key),
		ResourceType:   resourceTypeRaw,
		Overwrite:      api.Bool(false),
		UniqueFilename: api.Bool(false),
		UseFilename:    api.Bool(false),
	}
	result, err := a.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	if alreadyExisted(result, started) {
		return "", fmt.Errorf("%w: %s", service.ErrObjectExists, key)
	}

	a.logger.Debug("Uploaded resume to Cloudinary",
		zap.String("public_id", result.PublicID),
		zap.Int64("size", size),
		zap.String("content_type", contentType),
	)
	return result.SecureURL, nil
}

// alreadyExisted reports whether an overwrite=false upload was answered with
// the asset already stored at the public id. Cloudinary flags that with
// "existing": true; an old created_at covers responses without the flag.
func alreadyExisted(result *uploader.UploadResult, started time.Time) bool {
	if raw, ok := result.Response.(map[string]interface{}); ok {
		if existing, ok := raw["existing"].(bool); ok {
			return existing
		}
	}
	return !result.CreatedAt.IsZero() && result.CreatedAt.Before(started.Add(-collisionSkew))
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, key string) error {
	result, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     a.publicID(key),
		ResourceType: resourceTypeRaw,
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary rejected delete: %s", result.Error.Message)
	}
	return nil
}

// KeyForURL parses https://res.cloudinary.com/<cloud>/raw/upload/[v<n>/]<folder>/<key>.
func (a *cloudinaryAdapter) KeyForURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host != "res.cloudinary.com" {
		return "", false
	}
	prefix := "/" + a.cloudName + "/" + resourceTypeRaw + "/upload/"
	rest, ok := strings.CutPrefix(u.Path, prefix)
	if !ok {
		return "", false
	}
	if first, after, found := strings.Cut(rest, "/"); found && versionSegment.MatchString(first) {
		rest = after
	}
	if a.folder != "" {
		if rest, ok = strings.CutPrefix(rest, a.folder+"/"); !ok {
			return "", false
		}
	}
	return rest, rest != ""
}
