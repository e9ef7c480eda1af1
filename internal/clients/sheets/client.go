package sheets

import (
	"context"
	"fmt"

	"utm-som/internal/config"
	"utm-som/internal/observability"
	"utm-som/internal/utm"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client appends link records to a spreadsheet through the Sheets API.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	writeRange    string
	logger        *observability.Logger
}

// NewClient builds a Sheets client. Credentials come from cfg.CredentialsFile
// when set, otherwise from Application Default Credentials; extra options are
// appended after those.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logger *observability.Logger, opts ...option.ClientOption) (*Client, error) {
	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		writeRange:    cfg.Range,
		logger:        logger,
	}, nil
}

func (c *Client) Name() string { return "sheets" }

// Append adds the record as one row below the existing data.
func (c *Client) Append(ctx context.Context, record utm.Record) error {
	cells := record.Row()
	row := make([]interface{}, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}

	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, c.writeRange, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Error(ctx, "failed to append row to sheet", err)
		return fmt.Errorf("failed to append row to sheet: %w", err)
	}
	return nil
}
