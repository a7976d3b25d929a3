package logstore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileKV keeps each slot in its own file inside a root directory.
// Key names are escaped so any slot name is a valid file name.
type FileKV struct {
	rootDir string
}

func NewFileKV(rootDir string) (*FileKV, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", rootDir, err)
	}
	return &FileKV{rootDir: rootDir}, nil
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	value, err := os.ReadFile(f.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return value, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	if err := os.WriteFile(f.pathFor(key), value, 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (f *FileKV) Keys(_ context.Context, prefix string) ([]string, error) {
	dirEntries, err := os.ReadDir(f.rootDir)
	if err != nil {
		return nil, fmt.Errorf("read storage dir: %w", err)
	}

	var keys []string
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		key, err := url.PathUnescape(dirEntry.Name())
		if err != nil {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (f *FileKV) Remove(_ context.Context, keys ...string) error {
	for _, key := range keys {
		if err := os.Remove(f.pathFor(key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove slot %s: %w", key, err)
		}
	}
	return nil
}

func (f *FileKV) pathFor(key string) string {
	return filepath.Join(f.rootDir, url.PathEscape(key))
}
