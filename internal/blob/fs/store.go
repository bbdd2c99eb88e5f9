// Package fs provides the filesystem blob sink, the default export target in
// development.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"shopcore/internal/blob"
)

// Store implements blob.Store on a local directory. Keys map to relative
// paths under the root; a sidecar (`<name>.meta`) records the content type.
// It is intentionally simple and not concurrent-writer safe beyond per-file
// creation.
type Store struct {
	root string
}

// New returns a filesystem sink rooted at path, creating it if needed. An
// empty root falls back to ./exports.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./exports"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) Driver() blob.Driver { return blob.DriverFilesystem }

// sanitizeKey forbids path traversal and absolute paths.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key")
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid key traversal")
	}
	return clean, nil
}

func (s *Store) pathFor(key string) (dataPath, metaPath string, err error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", "", err
	}
	dataPath = filepath.Join(s.root, k)
	metaPath = dataPath + ".meta"
	return
}

type metaFile struct {
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Put writes the payload to disk, replacing any previous artifact under key.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts blob.PutOptions) (blob.Info, error) {
	dataPath, metaPath, err := s.pathFor(key)
	if err != nil {
		return blob.Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return blob.Info{}, err
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return blob.Info{}, err
	}
	if err := os.WriteFile(dataPath, payload, 0o644); err != nil {
		return blob.Info{}, err
	}
	meta := metaFile{
		ContentType: opts.ContentType,
		Size:        int64(len(payload)),
		UpdatedAt:   time.Now().UTC(),
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return blob.Info{}, err
	}
	if err := os.WriteFile(metaPath, encoded, 0o644); err != nil {
		return blob.Info{}, err
	}
	return blob.Info{Key: key, Size: meta.Size, ContentType: meta.ContentType, LastModified: meta.UpdatedAt}, nil
}

// Get opens the stored artifact for reading.
func (s *Store) Get(_ context.Context, key string) (blob.Info, io.ReadCloser, error) {
	dataPath, metaPath, err := s.pathFor(key)
	if err != nil {
		return blob.Info{}, nil, err
	}
	f, err := os.Open(dataPath)
	if err != nil {
		return blob.Info{}, nil, err
	}
	info := blob.Info{Key: key}
	if stat, err := f.Stat(); err == nil {
		info.Size = stat.Size()
		info.LastModified = stat.ModTime().UTC()
	}
	if encoded, err := os.ReadFile(metaPath); err == nil {
		var meta metaFile
		if err := json.Unmarshal(encoded, &meta); err == nil {
			info.ContentType = meta.ContentType
		}
	}
	return info, f, nil
}

// List walks the root and returns artifacts whose keys start with prefix,
// sorted by key.
func (s *Store) List(_ context.Context, prefix string) ([]blob.Info, error) {
	var out []blob.Info
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".meta") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		info := blob.Info{Key: key}
		if stat, err := d.Info(); err == nil {
			info.Size = stat.Size()
			info.LastModified = stat.ModTime().UTC()
		}
		out = append(out, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
