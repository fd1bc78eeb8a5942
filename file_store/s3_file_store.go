package file_store

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"

	"github.com/pixelgram-app/pixelgram-backend/utils"
)

type S3FileStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

func NewS3FileStore(bucket, region, urlPrefix string) (*S3FileStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:    bucket,
		urlPrefix: urlPrefix,
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

// S3 key is md5 of the content plus the original extension, so storing
// the same bytes twice lands on the same object.
func (s *S3FileStore) GenerateKey(data []byte, fileName string) (string, error) {
	key := utils.BytesToMd5Hash(data)
	if len(key) == 0 {
		return "", errors.New("generate empty s3 key, invalid")
	}
	return key + utils.GetUrlExtNameWithDot(fileName), nil
}

// If the key already exists, just return it without re-uploading.
func (s *S3FileStore) Store(data []byte, fileName string) (string, error) {
	key, err := s.GenerateKey(data, fileName)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate s3 key")
	}

	if !s.IsKeyExisted(key) {
		_, err = s.uploader.Upload(&s3manager.UploadInput{
			ACL:    aws.String("public-read"),
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload to s3 %w", err)
		}
	}
	return key, nil
}

func (s *S3FileStore) Delete(key string) error {
	_, err := s.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3FileStore) IsKeyExisted(key string) bool {
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	return s.urlPrefix + key
}
