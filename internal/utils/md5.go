package utils

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// MD5File hashes a file reading chunkSize bytes at a time.
func MD5File(path string, chunkSize int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if chunkSize <= 0 {
		chunkSize = 32 * 1024
	}
	h := md5.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, chunkSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
