package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"strings"
	"unsafe"
)

// BytesToString converts a byte slice to a string without copying.
// buf must not be modified afterwards.
func BytesToString(buf []byte) string {
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

// RandomToken returns a URL-safe token built from n random bytes.
func RandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// PathExists reports whether path exists and is a directory (isDir) or a regular file.
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stat.IsDir() == isDir, nil
}

// TrimCommitHash cleans up the output of git rev-parse.
func TrimCommitHash(out []byte) string {
	return strings.TrimSpace(BytesToString(out))
}
