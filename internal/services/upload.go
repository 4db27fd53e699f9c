package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	appconfig "fetenahub-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLExpiry = 5 * time.Minute

// allowedExtensions lists the accepted exam page file types.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadService issues presigned upload URLs and resolves uploaded objects to
// public URLs.
type UploadService struct {
	s3Client      *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	publicBaseURL string
}

// NewUploadService creates a new upload service backed by an S3-compatible
// object store.
func NewUploadService(storageCfg appconfig.StorageConfig) (*UploadService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(storageCfg.Region),
	}
	if storageCfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(storageCfg.AccessKey, storageCfg.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if storageCfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(storageCfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &UploadService{
		s3Client:      s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        storageCfg.Bucket,
		region:        storageCfg.Region,
		publicBaseURL: strings.TrimSuffix(storageCfg.PublicBaseURL, "/"),
	}, nil
}

// UploadURLResponse carries a presigned write location
type UploadURLResponse struct {
	SignedURL string `json:"signed_url"`
	Path      string `json:"path"`
	ExpiresIn int    `json:"expires_in"`
}

// GetUploadURL generates a presigned PUT URL for a new exam page file. The
// object key is year/month partitioned and collision-free.
func (s *UploadService) GetUploadURL(ctx context.Context, filename, contentType string) (*UploadURLResponse, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, ErrInvalidFileType
	}

	key := fmt.Sprintf("%s/%s_%s", time.Now().UTC().Format("2006/01"), uuid.New().String(), filename)

	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &UploadURLResponse{
		SignedURL: request.URL,
		Path:      key,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}

// PublicURL resolves an uploaded object key to its public read URL
func (s *UploadService) PublicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
