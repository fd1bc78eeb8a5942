package file_store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pixelgram-app/pixelgram-backend/utils"
)

// LocalFileStore keeps uploads on local disk. Used for development and
// tests, production runs on the S3 store.
type LocalFileStore struct {
	dir       string
	urlPrefix string
}

func NewLocalFileStore(dir, urlPrefix string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create media directory")
	}
	return &LocalFileStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *LocalFileStore) Store(data []byte, fileName string) (string, error) {
	key := utils.BytesToMd5Hash(data) + utils.GetUrlExtNameWithDot(fileName)
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write media file")
	}
	return key, nil
}

func (s *LocalFileStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return s.urlPrefix + key
}
