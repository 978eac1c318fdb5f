package persistence

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dsridhar11/mbot123/internal/domain"
)

const reportTimeLayout = "2006-01-02_15-04-05"

// FileReportStore keeps summary reports as flat text files in a single
// directory. Filenames embed the generation timestamp at second resolution,
// so reverse lexicographic order is newest-first. Two saves within the same
// second overwrite each other; that is an accepted property of the naming
// scheme, not something this store defends against.
type FileReportStore struct {
	dir string
}

func NewFileReportStore(dir string) (*FileReportStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &domain.PersistenceError{Op: "create report dir", Err: err}
	}
	return &FileReportStore{dir: dir}, nil
}

// Save writes the report body under a timestamp-derived filename and
// returns it. The file starts with a generation marker line, then a blank
// line, then the body.
func (s *FileReportStore) Save(body string) (string, error) {
	// The directory may have been removed since construction.
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", &domain.PersistenceError{Op: "create report dir", Err: err}
	}

	ts := time.Now().Format(reportTimeLayout)
	name := "summary_" + ts + ".txt"
	content := "🗓 Report Generated: " + ts + "\n\n" + body

	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0644); err != nil {
		return "", &domain.PersistenceError{Op: "write report", Err: err}
	}
	return name, nil
}

// List returns all report filenames in reverse lexicographic order.
func (s *FileReportStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, &domain.PersistenceError{Op: "list reports", Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Read returns the content of one report as text.
func (s *FileReportStore) Read(filename string) (string, error) {
	path, err := s.Path(filename)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrNotFound
		}
		return "", &domain.PersistenceError{Op: "read report", Err: err}
	}
	return string(data), nil
}

// Path validates the client-supplied filename and resolves it inside the
// report directory. Names that could escape the directory are rejected.
func (s *FileReportStore) Path(filename string) (string, error) {
	if filename == "" || strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, `/\`) {
		return "", domain.ErrInvalidName
	}
	path := filepath.Join(s.dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", domain.ErrNotFound
	}
	return path, nil
}
