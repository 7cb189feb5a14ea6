package uploads

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is where stored files are served back from.
const PublicPrefix = "/uploads/"

// ErrNotDataURL is returned for signature payloads that are not an image
// data-URL.
var ErrNotDataURL = errors.New("uploads: not an image data-url")

// Store writes uploaded bytes into one flat directory under random names
// and hands back public paths. It performs no type or size validation; the
// transport body limit is enforced at the router boundary.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// SaveBytes writes data under a fresh uuid name with the given extension
// (".png", ".jpg", ...; empty is allowed) and returns the public path.
func (s *Store) SaveBytes(data []byte, ext string) (string, error) {
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return PublicPrefix + name, nil
}

// SaveFile stores one multipart file, preserving its original extension.
func (s *Store) SaveFile(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	name := uuid.NewString() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, f); err != nil {
		return "", err
	}
	return PublicPrefix + name, nil
}

// DecodeDataURL validates the data:image/ prefix of a signature payload and
// returns the decoded bytes.
func DecodeDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, ErrNotDataURL
	}
	_, b64, found := strings.Cut(s, ",")
	if !found {
		return nil, ErrNotDataURL
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, ErrNotDataURL
	}
	return data, nil
}
