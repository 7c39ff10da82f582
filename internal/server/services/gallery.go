package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aquapure/backoffice/internal/server/models"
	"github.com/aquapure/backoffice/internal/server/repositories/gallery"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	sdkconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/aquapure/backoffice/internal/server/config"
)

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = sdkconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// GalleryService manages published photos. Image bytes never pass through
// the server: uploads and downloads go straight to the object store via
// presigned URLs.
type GalleryService struct {
	repo gallery.Repository
	s3   appconfig.S3Config
}

func NewGalleryService(repo gallery.Repository, cfg *appconfig.Config) *GalleryService {
	return &GalleryService{repo: repo, s3: cfg.S3}
}

func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("gallery/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *GalleryService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		sdkconfig.WithRegion(s.s3.Region),
		sdkconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.s3.AccessKey,
			s.s3.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.s3.BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// CreateItem records a new gallery item and returns it together with a
// presigned PUT URL the caller uploads the image to.
func (s *GalleryService) CreateItem(ctx context.Context, title, category string) (*models.GalleryItem, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, "", err
	}

	bucket := s.s3.Bucket
	key := randomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, "", err
	}

	item := &models.GalleryItem{Title: title, Category: category, StorageKey: key}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, "", fmt.Errorf("error creating gallery item: %v", err)
	}

	return created, req.URL, nil
}

// PresignedGetURL returns a time-limited download link for a stored image.
func (s *GalleryService) PresignedGetURL(ctx context.Context, storageKey string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.s3.Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &storageKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *GalleryService) Get(ctx context.Context, id string) (*models.GalleryItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GalleryService) List(ctx context.Context, category string) ([]*models.GalleryItem, error) {
	result, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("error listing gallery: %v", err)
	}
	return result, nil
}

func (s *GalleryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
