package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"postboard/internal/common/constants"
	"postboard/internal/common/crypto"
	commonerrors "postboard/internal/common/errors"
	"postboard/internal/observability/metrics"
)

// PictureStore writes uploaded profile pictures to local disk under
// randomized names. Files are never deleted; a replaced picture simply
// stops being referenced.
type PictureStore interface {
	Save(data []byte, originalFilename string) (string, error)
}

type DiskPictureStore struct {
	dir string
}

func NewDiskPictureStore(dir string) (*DiskPictureStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create picture directory %s: %w", dir, err)
	}
	return &DiskPictureStore{dir: dir}, nil
}

// Save stores data under a random hex name with the upload's original
// extension and returns the stored filename. The caller persists the
// database reference only after Save succeeds.
func (s *DiskPictureStore) Save(data []byte, originalFilename string) (string, error) {
	if len(data) > constants.MaxPictureSizeBytes {
		return "", commonerrors.ErrPictureTooLarge
	}

	hexName, err := crypto.RandomHex(constants.PictureNameHexBytes)
	if err != nil {
		return "", err
	}

	filename := hexName + filepath.Ext(originalFilename)
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write picture %s: %w", path, err)
	}

	metrics.ProfilePicturesStored.Inc()
	return filename, nil
}

func (s *DiskPictureStore) Dir() string {
	return s.dir
}
