package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"leadmart/internal/repositories"
)

const exportURLExpiry = 15 * time.Minute

// ExportService writes the full lead list to CSV in object storage and hands
// back a short-lived download link.
type ExportService interface {
	ExportLeadsCSV(ctx context.Context) (string, error)
}

type exportService struct {
	leadRepo repositories.LeadRepository
	storage  StorageService
	bucket   string
}

func NewExportService(leadRepo repositories.LeadRepository, storage StorageService, bucket string) ExportService {
	return &exportService{
		leadRepo: leadRepo,
		storage:  storage,
		bucket:   bucket,
	}
}

// ExportLeadsCSV snapshots every lead into a timestamped CSV object and
// returns a presigned URL valid for fifteen minutes.
func (s *exportService) ExportLeadsCSV(ctx context.Context) (string, error) {
	leads, err := s.leadRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load leads for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "first_name", "last_name", "age", "agent_email", "created_at"}); err != nil {
		return "", err
	}
	for _, lead := range leads {
		record := []string{
			lead.ID.String(),
			lead.FirstName,
			lead.LastName,
			strconv.Itoa(lead.Age),
			lead.AgentEmail,
			lead.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	if err := s.storage.EnsureBucketExists(ctx, s.bucket); err != nil {
		return "", fmt.Errorf("failed to ensure export bucket: %w", err)
	}

	objectName := fmt.Sprintf("leads-%s.csv", time.Now().Format("20060102-150405"))
	if err := s.storage.Upload(ctx, s.bucket, objectName, "text/csv", &buf, int64(buf.Len())); err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, objectName, exportURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign export url: %w", err)
	}
	return url, nil
}
