package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// replaceWriter stages a merge result in a sibling temp file and swaps it
// into place only once the render has fully succeeded, mirroring vpatch.c's
// mkstemp-then-rename-twice dance: write the result, rename the original to
// "<name>.porig" (skippable with --no-backup), then rename the temp file
// onto the original name. The temp name embeds a uuid instead of mkstemp's
// PID-derived XXXXXX suffix, so two wiggle processes racing on the same
// directory never collide even across PID reuse.
type replaceWriter struct {
	target   string
	tmpPath  string
	tmpFile  *os.File
	noBackup bool
}

func newReplaceWriter(target string, noBackup bool) (*replaceWriter, error) {
	dir := filepath.Dir(target)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(target), uuid.New().String()))
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("wiggle: could not create temporary file for %s: %w", target, err)
	}
	if fi, err := os.Stat(target); err == nil {
		_ = f.Chmod(fi.Mode())
	}
	return &replaceWriter{target: target, tmpPath: tmpPath, tmpFile: f, noBackup: noBackup}, nil
}

func (r *replaceWriter) Write(p []byte) (int, error) { return r.tmpFile.Write(p) }

// Commit backs up the original (unless suppressed) and swaps the staged
// result into place. On any failure the temp file is removed and the
// original file is left under its own name.
func (r *replaceWriter) Commit() error {
	if err := r.tmpFile.Close(); err != nil {
		_ = os.Remove(r.tmpPath)
		return err
	}
	if !r.noBackup {
		backup := r.target + ".porig"
		if _, err := os.Stat(backup); err == nil {
			_ = os.Remove(r.tmpPath)
			return fmt.Errorf("wiggle: %s already exists", backup)
		}
		if err := os.Rename(r.target, backup); err != nil {
			_ = os.Remove(r.tmpPath)
			return fmt.Errorf("wiggle: failed to back up %s: %w", r.target, err)
		}
	}
	if err := os.Rename(r.tmpPath, r.target); err != nil {
		_ = os.Remove(r.tmpPath)
		if !r.noBackup {
			_ = os.Rename(r.target+".porig", r.target)
		}
		return fmt.Errorf("wiggle: failed to move new file into place: %w", err)
	}
	return nil
}

func (r *replaceWriter) Abort() {
	_ = r.tmpFile.Close()
	_ = os.Remove(r.tmpPath)
}
