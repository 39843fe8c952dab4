package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode selects where backups live.
type BackupMode string

const (
	// BackupModeSidecar writes the backup next to the original file with
	// the BackupSuffix appended.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the original filename for sidecar backups.
const BackupSuffix = ".gophpfix.bak"

// BackupConfig controls whether and how backups are made before a rewrite.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns sidecar mode, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath maps a file path to its backup location, or empty when mode
// disables backups. Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// copyPreservingMode atomically copies src to dst with src's file mode. A
// missing src is not an error; the copy is just skipped.
func copyPreservingMode(ctx context.Context, src, dst string) (bool, error) {
	content, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", src, err)
	}
	stat, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", src, err)
	}
	if err := WriteAtomic(ctx, dst, content, stat.Mode()); err != nil {
		return false, err
	}
	return true, nil
}

// CreateBackup snapshots path before the first rewrite. It reports whether
// a backup was written: an existing backup is never overwritten, so over
// repeated runs the backup always holds the pre-gophpfix content.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	target := ""
	if cfg.Enabled {
		target = BackupPath(path, cfg.Mode)
	}
	if target == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	switch _, err := os.Stat(target); {
	case err == nil:
		return false, nil
	case !os.IsNotExist(err):
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	created, err := copyPreservingMode(ctx, path, target)
	if err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return created, nil
}

// RestoreBackup writes the backup's content back over path. It reports
// whether anything was restored; no backup is not an error.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	source := BackupPath(path, mode)
	if source == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}

	restored, err := copyPreservingMode(ctx, source, path)
	if err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return restored, nil
}

// RemoveBackup deletes the backup for path, reporting whether one existed.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	target := BackupPath(path, mode)
	if target == "" {
		return false, nil
	}
	switch err := os.Remove(target); {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("remove backup: %w", err)
	}
}

// BackupExists reports whether a backup is present for path.
func BackupExists(path string, mode BackupMode) bool {
	target := BackupPath(path, mode)
	if target == "" {
		return false
	}
	_, err := os.Stat(target)
	return err == nil
}
