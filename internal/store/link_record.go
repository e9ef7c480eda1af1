package store

import (
	"context"
	"fmt"
	"time"

	"utm-som/internal/utm"

	"github.com/google/uuid"
)

type LinkRecord struct {
	ID          uuid.UUID `db:"id"`
	GeneratedAt time.Time `db:"generated_at"`
	Usuario     string    `db:"usuario"`
	Alias       string    `db:"alias"`
	URLBase     string    `db:"url_base"`
	Ciudad      string    `db:"ciudad"`
	Canal       string    `db:"canal"`
	UTMSource   string    `db:"utm_source"`
	UTMMedium   string    `db:"utm_medium"`
	UTMCampaign string    `db:"utm_campaign"`
	UTMContent  string    `db:"utm_content"`
	URLFinal    string    `db:"url_final"`
	CreatedAt   time.Time `db:"created_at"`
}

// Record converts the row back into the value object used by the sinks.
func (r LinkRecord) Record() utm.Record {
	return utm.Record{
		Timestamp: r.GeneratedAt.UTC(),
		User:      r.Usuario,
		Alias:     r.Alias,
		BaseURL:   r.URLBase,
		City:      r.Ciudad,
		Channel:   r.Canal,
		Source:    r.UTMSource,
		Medium:    r.UTMMedium,
		Campaign:  r.UTMCampaign,
		Content:   r.UTMContent,
		FinalURL:  r.URLFinal,
	}
}

const sqlInsertLinkRecord = `
INSERT INTO link_records (generated_at, usuario, alias, url_base, ciudad, canal, utm_source, utm_medium, utm_campaign, utm_content, url_final)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, generated_at, usuario, alias, url_base, ciudad, canal, utm_source, utm_medium, utm_campaign, utm_content, url_final, created_at
`

// InsertLinkRecord appends one generated link to the ledger.
func (s *Store) InsertLinkRecord(ctx context.Context, record utm.Record) (LinkRecord, error) {
	var row LinkRecord
	err := s.db.GetContext(ctx, &row, sqlInsertLinkRecord,
		record.Timestamp,
		record.User,
		record.Alias,
		record.BaseURL,
		record.City,
		record.Channel,
		record.Source,
		record.Medium,
		record.Campaign,
		record.Content,
		record.FinalURL,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to insert link record", err)
		return LinkRecord{}, fmt.Errorf("failed to insert link record: %w", err)
	}
	return row, nil
}

const sqlListRecentLinkRecords = `
SELECT id, generated_at, usuario, alias, url_base, ciudad, canal, utm_source, utm_medium, utm_campaign, utm_content, url_final, created_at
FROM link_records
ORDER BY generated_at DESC, created_at DESC
LIMIT $1
`

// ListRecentLinkRecords returns the newest records first.
func (s *Store) ListRecentLinkRecords(ctx context.Context, limit int) ([]LinkRecord, error) {
	rows := []LinkRecord{}
	err := s.db.SelectContext(ctx, &rows, sqlListRecentLinkRecords, limit)
	if err != nil {
		s.logger.Error(ctx, "failed to list link records", err)
		return nil, fmt.Errorf("failed to list link records: %w", err)
	}
	return rows, nil
}
