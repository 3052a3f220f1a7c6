package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// separators inside an invoice number must not split the file name
var separatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

// DirSaver writes downloads into Dir, creating it when missing
type DirSaver struct {
	Dir string
}

// Save writes data to Dir/filename, replacing an existing file.
// Path separators in filename are replaced with "_" so the file always
// lands directly in Dir under the requested name.
func (d DirSaver) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := separatorReplacer.Replace(filename)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", filename)
	}

	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
