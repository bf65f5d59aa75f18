package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore stores images on Cloudinary under folder/<ownerID>/.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration error: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, ownerID, filename string, blob io.Reader) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, blob, uploader.UploadParams{
		Folder:      fmt.Sprintf("%s/%s", s.folder, ownerID),
		UseFilename: api.Bool(true),
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// Delete removes the object behind a delivery URL. The public ID is rebuilt
// from the last two path segments (owner folder and basename sans extension)
// under the configured root folder.
func (s *CloudinaryStore) Delete(ctx context.Context, url string) error {
	segments := strings.Split(url, "/")
	if len(segments) < 2 {
		return fmt.Errorf("unrecognized image url: %s", url)
	}
	folder := segments[len(segments)-2]
	name := strings.SplitN(segments[len(segments)-1], ".", 2)[0]
	publicID := fmt.Sprintf("%s/%s/%s", s.folder, folder, name)

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if result.Result != "ok" {
		return fmt.Errorf("cannot delete image %s: %s", publicID, result.Result)
	}
	return nil
}
