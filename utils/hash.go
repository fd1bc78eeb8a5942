package utils

import (
	"crypto/md5"
	"encoding/hex"
	"path"
	"strings"
)

// BytesToMd5Hash returns the hex md5 digest of data, used as a stable
// content-addressed media store key.
func BytesToMd5Hash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// GetUrlExtNameWithDot returns the lowercased file extension of a file
// name or url including the leading dot, or empty string if there is
// none.
func GetUrlExtNameWithDot(name string) string {
	ext := path.Ext(name)
	if idx := strings.IndexAny(ext, "?#"); idx >= 0 {
		ext = ext[:idx]
	}
	return strings.ToLower(ext)
}
