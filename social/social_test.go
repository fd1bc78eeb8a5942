package social

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/model"
	"github.com/pixelgram-app/pixelgram-backend/utils"
)

// fakeFileStore records deletions so tests can assert media release
// behavior without touching S3 or disk.
type fakeFileStore struct {
	deleted    []string
	failDelete bool
}

func (f *fakeFileStore) Store(data []byte, fileName string) (string, error) {
	return utils.BytesToMd5Hash(data) + utils.GetUrlExtNameWithDot(fileName), nil
}

func (f *fakeFileStore) Delete(key string) error {
	f.deleted = append(f.deleted, key)
	if f.failDelete {
		return errors.New("media store unavailable")
	}
	return nil
}

func (f *fakeFileStore) GetUrlFromKey(key string) string {
	return "https://cdn.test/" + key
}

func newTestEngine(t *testing.T) (*Engine, *gorm.DB, *fakeFileStore) {
	t.Helper()
	db, err := utils.GetTestDBConnection(filepath.Join(t.TempDir(), "social.db"))
	require.NoError(t, err)
	require.NoError(t, utils.DatabaseSetupAndMigration(db))
	files := &fakeFileStore{}
	return NewEngine(db, files), db, files
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := model.User{
		Id:           uuid.New().String(),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestPost(t *testing.T, e *Engine, userID, content, imageKey string) *PostView {
	t.Helper()
	view, err := e.CreatePost(userID, content, imageKey)
	require.NoError(t, err)
	return view
}
