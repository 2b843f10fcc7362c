// atomic.go — Write-to-temp-then-rename file output.
package codec

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// writeAtomic streams write's output into a temp file beside path and
// renames it into place. On failure the temp file is removed and path is
// left untouched.
//
// A symlinked path is written through to its target. An existing file keeps
// its permission bits; a new one gets 0666 less the umask, like os.Create.
func writeAtomic(path string, write func(w io.Writer) error) (err error) {
	target, mode, err := resolveTarget(path)
	if err != nil {
		return err
	}

	tmp, err := createTemp(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, removeIfExists(tmp.Name()))
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return multierr.Append(fmt.Errorf("encode %s: %w", path, err), tmp.Close())
	}
	if mode != 0 {
		if err = tmp.Chmod(mode); err != nil {
			return multierr.Append(fmt.Errorf("chmod %s: %w", path, err), tmp.Close())
		}
	}
	if err = tmp.Sync(); err != nil {
		return multierr.Append(fmt.Errorf("sync %s: %w", path, err), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// resolveTarget follows symlinks at path and returns the file to replace
// plus its current permission bits. mode is 0 when nothing exists yet.
func resolveTarget(path string) (target string, mode fs.FileMode, err error) {
	target, err = filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Missing file, or a dangling link: write where the link points.
		if dest, lerr := os.Readlink(path); lerr == nil {
			if !filepath.IsAbs(dest) {
				dest = filepath.Join(filepath.Dir(path), dest)
			}
			return dest, 0, nil
		}
		return path, 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("resolve %s: %w", path, err)
	}

	fi, err := os.Stat(target)
	if err != nil {
		return "", 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return "", 0, fmt.Errorf("%s is not a regular file", path)
	}
	return target, fi.Mode().Perm(), nil
}

// createTemp opens a fresh file beside target. Unlike os.CreateTemp it
// asks for 0666 so the process umask decides the final bits.
func createTemp(target string) (*os.File, error) {
	dir, base := filepath.Split(target)
	for range 10000 {
		name := filepath.Join(dir, "."+base+"."+randomSuffix()+".tmp")
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("no free temp name beside %s", target)
}

func randomSuffix() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
