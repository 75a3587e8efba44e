// Package fileutil writes files so that readers never observe a partial
// document.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/errors"
)

// WriteFile writes data to a temporary file beside path and renames it into
// place. Missing parent directories are created.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	tmpPath, err := Stage(path, data, perm)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// Stage writes data to a synced temporary file beside path and returns its
// name. The caller renames it into place or removes it.
func Stage(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	fail := func(op string, err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO(op, path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("write", err)
	}
	if err := tmp.Close(); err != nil {
		return fail("close", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO("write", path, err)
	}
	return tmpPath, nil
}
