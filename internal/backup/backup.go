// Package backup keeps rotated copies of file-backed stores.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// weeklit-YYYYMMDD-HHMM[SS][-N].ext
var backupName = regexp.MustCompile(`^` + regexp.QuoteMeta(constants.BackupFilePrefix) + `(\d{8}-\d{4}(?:\d{2})?)(?:-(\d+))?(\.[a-z]+)$`)

var nowFunc = time.Now

type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64

	seq int
}

// Manager backs up the storage file at path. SQLite databases are copied
// with VACUUM INTO; other files are copied byte for byte.
type Manager struct {
	path      string
	backupDir string
	suffix    string
	max       int
}

// NewManager keeps at most maxBackups copies next to path, in a backups
// directory. maxBackups < 1 means constants.MaxBackups.
func NewManager(path string, maxBackups int) *Manager {
	if maxBackups < 1 {
		maxBackups = constants.MaxBackups
	}
	suffix := filepath.Ext(path)
	if suffix == "" {
		suffix = ".db"
	}
	return &Manager{
		path:      path,
		backupDir: filepath.Join(filepath.Dir(path), constants.BackupDirName),
		suffix:    suffix,
		max:       maxBackups,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) isSQLite() bool {
	return m.suffix != ".json"
}

func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation when called from RestoreBackup so the
// pre-restore copy cannot push out the backup being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		return "", fmt.Errorf("storage file does not exist: %s", m.path)
	}

	dest, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if m.isSQLite() {
		err = vacuumInto(m.path, dest)
	} else {
		err = copyFile(m.path, dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", m.path, err)
	}
	logger.Info("Created backup", "path", dest)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return dest, nil
}

// nextBackupPath tries minute precision, then seconds, then a counter.
func (m *Manager) nextBackupPath() (string, error) {
	now := nowFunc()
	candidate := func(stamp string, n int) string {
		name := constants.BackupFilePrefix + stamp
		if n > 0 {
			name += fmt.Sprintf("-%d", n)
		}
		return filepath.Join(m.backupDir, name+m.suffix)
	}

	if p := candidate(now.Format(minuteLayout), 0); !exists(p) {
		return p, nil
	}
	stamp := now.Format(secondLayout)
	for n := 0; n <= 100; n++ {
		if p := candidate(stamp, n); !exists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListBackups returns this store's backups, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := backupName.FindStringSubmatch(entry.Name())
		if match == nil || match[3] != m.suffix {
			continue
		}

		ts, err := time.ParseInLocation(minuteLayout, match[1], time.Local)
		if err != nil {
			ts, err = time.ParseInLocation(secondLayout, match[1], time.Local)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.backupDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		seq, _ := strconv.Atoi(match[2])
		backups = append(backups, BackupInfo{Path: path, Timestamp: ts, Size: info.Size(), seq: seq})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].seq > backups[j].seq
	})

	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := m.max; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}

	return nil
}

// RestoreBackup replaces the storage file with backupPath. The current file
// is backed up first. Callers must close the store beforehand.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if exists(m.path) {
		p, err := m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
		previous = p
	}

	tempPath := m.path + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore storage: %w", err)
	}

	// Stale WAL files would be replayed over the restored database.
	for _, ext := range []string{"-wal", "-shm"} {
		_ = os.Remove(m.path + ext)
	}

	logger.Info("Restored backup", "from", backupPath, "previous", previous)
	return previous, nil
}

func (m *Manager) verifyBackup(path string) error {
	if !m.isSQLite() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return fmt.Errorf("not a JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func vacuumInto(src, dest string) error {
	db, err := sql.Open("sqlite", src)
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		return copyFile(src, dest)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
