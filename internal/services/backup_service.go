package services

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"salao_backend/internal/database"
	"salao_backend/internal/models"
	"salao_backend/internal/monitoring"
	"salao_backend/pkg/utils"
)

// BackupService dumps the database to disk via pg_dump, optionally
// gzipped, and prunes dumps older than the retention window. Only one
// backup runs at a time.
type BackupService struct {
	dbConfig database.Config

	mu         sync.Mutex
	inProgress bool
	config     models.BackupConfig
	history    []models.BackupMetadata
}

// NewBackupService creates a new instance of BackupService.
func NewBackupService(dbConfig database.Config, config models.BackupConfig) *BackupService {
	if config.StoragePath == "" {
		config.StoragePath = "./backups"
	}
	if config.RetentionDays <= 0 {
		config.RetentionDays = 7
	}
	if config.Schedule == "" {
		config.Schedule = "0 3 * * *"
	}
	return &BackupService{dbConfig: dbConfig, config: config}
}

// Config returns the current backup settings.
func (s *BackupService) Config() models.BackupConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// UpdateConfig replaces retention and compression settings. The schedule
// itself is fixed at process start.
func (s *BackupService) UpdateConfig(config models.BackupConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if config.StoragePath != "" {
		s.config.StoragePath = config.StoragePath
	}
	if config.RetentionDays > 0 {
		s.config.RetentionDays = config.RetentionDays
	}
	s.config.Compression = config.Compression
}

// History returns past backup runs, newest first.
func (s *BackupService) History() []models.BackupMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]models.BackupMetadata, len(s.history))
	copy(history, s.history)
	return history
}

func (s *BackupService) begin() (models.BackupConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inProgress {
		return models.BackupConfig{}, ErrBackupInProgress
	}
	s.inProgress = true
	return s.config, nil
}

func (s *BackupService) finish(metadata models.BackupMetadata) {
	s.mu.Lock()
	s.inProgress = false
	s.history = append([]models.BackupMetadata{metadata}, s.history...)
	s.mu.Unlock()
	monitoring.BackupsTotal.WithLabelValues(metadata.Status).Inc()
}

// Run performs one backup. Used both by the HTTP trigger and the cron job.
func (s *BackupService) Run() (*models.BackupMetadata, error) {
	config, err := s.begin()
	if err != nil {
		return nil, err
	}

	metadata := models.BackupMetadata{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		Compressed: config.Compression,
	}

	path, size, err := s.dump(config, metadata.ID)
	if err != nil {
		message := err.Error()
		metadata.Status = models.BackupFailed
		metadata.Error = &message
		s.finish(metadata)
		utils.LogError(fmt.Errorf("backup %s failed: %w", metadata.ID, err))
		return &metadata, err
	}

	metadata.Status = models.BackupSuccess
	metadata.Size = size
	s.finish(metadata)
	utils.LogInfo(fmt.Sprintf("backup %s written to %s (%d bytes)", metadata.ID, path, size))

	if err := s.prune(config); err != nil {
		utils.LogWarn(fmt.Sprintf("pruning old backups: %v", err))
	}
	return &metadata, nil
}

func (s *BackupService) dump(config models.BackupConfig, id string) (string, int64, error) {
	if err := os.MkdirAll(config.StoragePath, 0o750); err != nil {
		return "", 0, fmt.Errorf("creating backup dir: %w", err)
	}

	name := fmt.Sprintf("backup_%s_%s.sql", time.Now().Format("20060102_150405"), id[:8])
	path := filepath.Join(config.StoragePath, name)

	cmd := exec.Command("pg_dump",
		"-h", s.dbConfig.Host,
		"-p", s.dbConfig.Port,
		"-U", s.dbConfig.User,
		"-d", s.dbConfig.Name,
		"-f", path,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+s.dbConfig.Password)
	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("pg_dump: %v: %s", err, strings.TrimSpace(string(output)))
	}

	if config.Compression {
		compressed, err := gzipFile(path)
		if err != nil {
			return "", 0, err
		}
		os.Remove(path)
		path = compressed
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("stat backup file: %w", err)
	}
	return path, info.Size(), nil
}

func gzipFile(path string) (string, error) {
	source, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening dump: %w", err)
	}
	defer source.Close()

	target := path + ".gz"
	destination, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("creating gzip file: %w", err)
	}
	defer destination.Close()

	writer := gzip.NewWriter(destination)
	if _, err := io.Copy(writer, source); err != nil {
		return "", fmt.Errorf("compressing dump: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finishing gzip: %w", err)
	}
	return target, nil
}

// prune removes dump files older than the retention window.
func (s *BackupService) prune(config models.BackupConfig) error {
	entries, err := os.ReadDir(config.StoragePath)
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -config.RetentionDays)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "backup_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(config.StoragePath, entry.Name())); err != nil {
				utils.LogWarn(fmt.Sprintf("removing old backup %s: %v", entry.Name(), err))
			}
		}
	}
	return nil
}

// ListFiles returns backup files on disk, newest first.
func (s *BackupService) ListFiles() ([]string, error) {
	config := s.Config()
	entries, err := os.ReadDir(config.StoragePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	files := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "backup_") {
			files = append(files, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// Restore replays a dump file into the database with psql. Gzipped dumps
// are decompressed on the fly.
func (s *BackupService) Restore(fileName string) error {
	if strings.Contains(fileName, "/") || strings.Contains(fileName, "..") {
		return fmt.Errorf("%w: invalid backup file name", ErrValidation)
	}
	config := s.Config()
	path := filepath.Join(config.StoragePath, fileName)
	if _, err := os.Stat(path); err != nil {
		return ErrNotFound
	}

	cmd := exec.Command("psql",
		"-h", s.dbConfig.Host,
		"-p", s.dbConfig.Port,
		"-U", s.dbConfig.User,
		"-d", s.dbConfig.Name,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+s.dbConfig.Password)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening backup file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(fileName, ".gz") {
		reader, err := gzip.NewReader(file)
		if err != nil {
			return fmt.Errorf("opening gzip stream: %w", err)
		}
		defer reader.Close()
		cmd.Stdin = reader
	} else {
		cmd.Stdin = file
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("psql restore: %v: %s", err, strings.TrimSpace(string(output)))
	}
	utils.LogInfo(fmt.Sprintf("restored database from %s", fileName))
	return nil
}
