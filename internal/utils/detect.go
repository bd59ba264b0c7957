package utils

import "github.com/gabriel-vasile/mimetype"

// DetectMIME sniffs the content type of a file from its leading bytes.
func DetectMIME(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}
