package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/davidwere/sokoni-api/config"
	"github.com/google/uuid"
)

const mediaUploadTimeout = 30 * time.Second

// MediaService uploads product images to the configured bucket and hands
// back the hosted URL. The catalog never talks to the media host itself.
type MediaService struct {
	bucket   string
	uploader *manager.Uploader
}

func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &MediaService{
		bucket:   cfg.MediaBucket,
		uploader: manager.NewUploader(client),
	}, nil
}

func (s *MediaService) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", invalidRequest("could not read image file")
	}
	defer f.Close()

	// Random key so concurrent uploads of the same filename never collide.
	key := fmt.Sprintf("products/%s%s", uuid.NewString(), filepath.Ext(file.Filename))

	uploadCtx, cancel := context.WithTimeout(ctx, mediaUploadTimeout)
	defer cancel()

	result, err := s.uploader.Upload(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		return "", transient("media upload failed")
	}

	return result.Location, nil
}
