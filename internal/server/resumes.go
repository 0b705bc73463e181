package server

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jonathan/careerpilot/internal/extract"
)

// maxResumeUpload caps uploaded resume size
const maxResumeUpload = 10 << 20

// ResumeStore keeps one uploaded resume file per user and extracts its text
// on demand.
type ResumeStore struct {
	dir string
}

// NewResumeStore creates a store rooted at dir
func NewResumeStore(dir string) (*ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &ResumeStore{dir: dir}, nil
}

// Save stores a user's resume, replacing any earlier upload. The filename is
// only used for its extension.
func (s *ResumeStore) Save(userID uuid.UUID, filename string, r io.Reader) error {
	kind, err := extract.KindFromPath(filename)
	if err != nil {
		return err
	}

	// One resume per user: drop the previous upload whatever its type
	if old, ok := s.find(userID); ok {
		_ = os.Remove(old)
	}

	dst := filepath.Join(s.dir, userID.String()+"."+string(kind))
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to store resume: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, io.LimitReader(r, maxResumeUpload)); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to store resume: %w", err)
	}
	return nil
}

// Text extracts the text of the user's stored resume
func (s *ResumeStore) Text(userID uuid.UUID) (string, error) {
	path, ok := s.find(userID)
	if !ok {
		return "", &ErrResumeMissing{}
	}

	kind, err := extract.KindFromPath(path)
	if err != nil {
		return "", err
	}
	return extract.Text(path, kind)
}

// Has reports whether the user has a stored resume
func (s *ResumeStore) Has(userID uuid.UUID) bool {
	_, ok := s.find(userID)
	return ok
}

func (s *ResumeStore) find(userID uuid.UUID) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(s.dir, userID.String()+".*"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}
