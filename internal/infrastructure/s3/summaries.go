package s3infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-med-reminder/internal/domain"
)

// SummaryArchive writes one JSON object per dispatcher run, partitioned by day:
// summaries/YYYY/MM/DD/<run id>.json
type SummaryArchive struct {
	store  *Store
	prefix string
}

func NewSummaryArchive(store *Store) *SummaryArchive {
	return &SummaryArchive{store: store, prefix: "summaries"}
}

func (a *SummaryArchive) Archive(ctx context.Context, s *domain.RunSummary) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	_, err = a.store.Upload(ctx, a.key(s), bytes.NewReader(body), "application/json")
	return err
}

func (a *SummaryArchive) key(s *domain.RunSummary) string {
	return fmt.Sprintf("%s/%s/%s.json", a.prefix, s.RanAtUTC.UTC().Format("2006/01/02"), s.RunID)
}
