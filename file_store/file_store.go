package file_store

// FileStore persists uploaded media and hands back opaque keys. Posts
// and profiles only ever hold the key, url resolution happens at read
// time.
type FileStore interface {
	// Store persists the file content and returns its key. Storing the
	// same content twice returns the same key.
	Store(data []byte, fileName string) (key string, err error)
	// Delete removes the file behind key. Deleting a missing key is not
	// an error.
	Delete(key string) error
	GetUrlFromKey(key string) string
}
