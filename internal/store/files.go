package store

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/cadastro/internal/utils/fileutil"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/logging"
)

// Files is a Store backed by a data directory.
type Files struct {
	dir string
}

var _ Store = (*Files)(nil)

// NewFiles creates a store rooted at dir. The directory is created on the
// first save.
func NewFiles(dir string) *Files {
	return &Files{dir: dir}
}

// Dir returns the data directory.
func (f *Files) Dir() string {
	return f.dir
}

// Path returns the file holding collection k.
func (f *Files) Path(k Key) string {
	return filepath.Join(f.dir, string(k)+constants.BundleExtension)
}

// Load implements Store.
func (f *Files) Load(ctx context.Context) (*bundle.Bundle, error) {
	fsys := os.DirFS(f.dir)
	doc := make(map[string]any, len(Keys))

	for _, k := range Keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := string(k) + constants.BundleExtension
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.WrapIO("read", f.Path(k), err)
		}

		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, errors.WrapParse("json", f.Path(k), err)
		}
		doc[string(k)] = v
	}

	return bundle.FromValue(doc), nil
}

// Save implements Store. Agents are written owner-readable only since they
// carry credentials.
//
// Every document is staged before any is replaced, and documents already
// replaced are restored when a later one fails, so the directory holds
// either the previous state or b.
func (f *Files) Save(ctx context.Context, b *bundle.Bundle) error {
	if b == nil {
		b = &bundle.Bundle{}
	}

	changes := make([]change, 0, len(Keys))
	defer func() {
		for _, c := range changes {
			c.discard()
		}
	}()

	for _, k := range Keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := f.stage(k, value(b, k))
		if err != nil {
			return err
		}
		changes = append(changes, c)
	}

	// Commit ignores ctx; stopping midway would leave a mixed state.
	for i := range changes {
		if err := changes[i].apply(); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := changes[j].revert(); rerr != nil {
					logging.FromContext(ctx).Error().Err(rerr).Str("file", changes[j].path).Msg("State rollback failed")
				}
			}
			return err
		}
	}

	logging.FromContext(ctx).Debug().
		Str("dir", f.dir).
		Int("residents", len(b.Residents)).
		Int("territories", len(b.Territories)).
		Msg("State saved")
	return nil
}

// change is one staged document replacement together with what it
// replaces.
type change struct {
	path    string
	staged  string // temp file to move into place, empty to delete path
	prev    []byte // previous contents, nil when path did not exist
	existed bool
	perm    os.FileMode
}

func (f *Files) stage(k Key, v any) (change, error) {
	c := change{path: f.Path(k), perm: constants.FilePermissions}
	if k == KeyAgents {
		c.perm = constants.SecureFilePermissions
	}

	prev, err := os.ReadFile(c.path)
	switch {
	case err == nil:
		c.prev, c.existed = prev, true
	case !errors.Is(err, fs.ErrNotExist):
		return c, errors.WrapIO("read", c.path, err)
	}

	if isAbsent(v) {
		return c, nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return c, errors.WrapParse("json", c.path, err)
	}
	if c.staged, err = fileutil.Stage(c.path, data, c.perm); err != nil {
		return c, err
	}
	return c, nil
}

func (c *change) apply() error {
	if c.staged == "" {
		if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.WrapIO("delete", c.path, err)
		}
		return nil
	}
	if err := os.Rename(c.staged, c.path); err != nil {
		return errors.WrapIO("move", c.path, err)
	}
	c.staged = ""
	return nil
}

func (c *change) revert() error {
	if !c.existed {
		if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.WrapIO("delete", c.path, err)
		}
		return nil
	}
	return fileutil.WriteFile(c.path, c.prev, c.perm)
}

func (c *change) discard() {
	if c.staged != "" {
		_ = os.Remove(c.staged)
	}
}

func isAbsent(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case *bundle.Institution:
		return c == nil
	case *bundle.BackupConfig:
		return c == nil
	case []bundle.Agent:
		return c == nil
	case []bundle.Resident:
		return c == nil
	case []bundle.AuditLog:
		return c == nil
	case []bundle.Territory:
		return c == nil
	}
	return false
}
