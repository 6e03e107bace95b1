package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Segmentation results are gzip-compressed NIfTI volumes
const (
	ResultFolder      = "results"
	ResultSuffix      = "_seg.nii.gz"
	VolumeContentType = "application/gzip"
)

var (
	ErrInvalidKey = errors.New("invalid volume key")
	ErrForeignURL = errors.New("url does not belong to this volume store")
)

// ResultKey returns the storage key of a job's segmentation volume
func ResultKey(jobID string) string {
	return fmt.Sprintf("%s/%s%s", ResultFolder, jobID, ResultSuffix)
}

// ValidateKey rejects keys that are empty, absolute or escape their folder
func ValidateKey(key string) error {
	if key == "" || key[0] == '/' {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." || seg == "" {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
