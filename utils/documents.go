package utils

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	config "github.com/phillip/venturelink/config"
)

// DocumentStore holds the supporting documents attached to ideas.
type DocumentStore interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, storedURL string) error
	// ReadURL returns a URL a client can fetch the document from.
	ReadURL(ctx context.Context, storedURL string) (string, error)
}

// NewDocumentStore returns nil when document storage is disabled.
func NewDocumentStore(ctx context.Context, cfg *config.Config) (DocumentStore, error) {
	switch cfg.DocumentStorage {
	case "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "s3":
		return NewS3Store(ctx, cfg.AWSRegion, cfg.S3Bucket)
	default:
		return nil, nil
	}
}

// ---------------- CLOUDINARY ----------------

const documentFolder = "idea-documents"

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloud, key, secret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloud, key, secret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %v", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file multipart.File, _ *multipart.FileHeader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       documentFolder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %v", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload error: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, storedURL string) error {
	resourceType, publicID, err := extractPublicID(storedURL)
	if err != nil {
		return fmt.Errorf("could not extract public ID: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err = s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("delete error: %v", err)
	}
	return nil
}

func (s *CloudinaryStore) ReadURL(_ context.Context, storedURL string) (string, error) {
	return storedURL, nil
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// extractPublicID splits a delivery URL such as
// https://res.cloudinary.com/demo/raw/upload/v1234567890/idea-documents/deck.pdf
// into its resource type ("raw") and public id ("idea-documents/deck.pdf").
// Raw resources keep their extension in the public id.
func extractPublicID(imageURL string) (string, string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")

	upload := -1
	for i, p := range parts {
		if p == "upload" {
			upload = i
			break
		}
	}
	if upload < 1 || upload == len(parts)-1 {
		return "", "", errors.New("invalid cloudinary URL format")
	}
	resourceType := parts[upload-1]

	rest := parts[upload+1:]
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	publicID := path.Join(rest...)
	if resourceType != "raw" {
		publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	}
	return resourceType, publicID, nil
}

// ---------------- S3 ----------------

type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	region  string
}

func NewS3Store(ctx context.Context, region, bucket string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{client: client, presign: s3.NewPresignClient(client), bucket: bucket, region: region}, nil
}

func (s *S3Store) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) keyFromURL(storedURL string) (string, error) {
	parsed, err := url.Parse(storedURL)
	if err != nil {
		return "", err
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", errors.New("invalid s3 object URL")
	}
	return key, nil
}

func (s *S3Store) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	key := documentFolder + "/" + time.Now().Format("20060102150405") + "-" + path.Base(header.Filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(header.Size),
		ContentType:   aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	return s.objectURL(key), nil
}

func (s *S3Store) Delete(ctx context.Context, storedURL string) error {
	key, err := s.keyFromURL(storedURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}

// ReadURL presigns a short-lived GET for the object.
func (s *S3Store) ReadURL(ctx context.Context, storedURL string) (string, error) {
	key, err := s.keyFromURL(storedURL)
	if err != nil {
		return "", err
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
