package utm

import (
	"encoding/json"
	"time"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is one generated link as it is logged. It is built once per commit,
// handed to the sinks and dropped.
type Record struct {
	Timestamp time.Time
	User      string
	Alias     string
	BaseURL   string
	City      string
	Channel   string
	Source    string
	Medium    string
	Campaign  string
	Content   string
	FinalURL  string
}

// NewRecord snapshots a built link and the form choices behind it.
func NewRecord(now time.Time, user, alias string, params LinkParams, link Link) Record {
	return Record{
		Timestamp: now.UTC(),
		User:      user,
		Alias:     alias,
		BaseURL:   params.BaseURL,
		City:      params.City,
		Channel:   params.Channel.Name,
		Source:    link.Source,
		Medium:    link.Medium,
		Campaign:  link.Campaign,
		Content:   link.Content,
		FinalURL:  link.URL,
	}
}

// recordDocument is the flat wire shape expected by the sheet logger.
type recordDocument struct {
	Timestamp   string `json:"timestamp"`
	Usuario     string `json:"usuario"`
	Alias       string `json:"alias"`
	URLBase     string `json:"url_base"`
	Ciudad      string `json:"ciudad"`
	Canal       string `json:"canal"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content"`
	URLFinal    string `json:"url_final"`
}

// FormattedTimestamp renders Timestamp with TimestampLayout.
func (r Record) FormattedTimestamp() string {
	return r.Timestamp.UTC().Format(TimestampLayout)
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordDocument{
		Timestamp:   r.FormattedTimestamp(),
		Usuario:     r.User,
		Alias:       r.Alias,
		URLBase:     r.BaseURL,
		Ciudad:      r.City,
		Canal:       r.Channel,
		UTMSource:   r.Source,
		UTMMedium:   r.Medium,
		UTMCampaign: r.Campaign,
		UTMContent:  r.Content,
		URLFinal:    r.FinalURL,
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var doc recordDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	var ts time.Time
	if doc.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339Nano, doc.Timestamp)
		if err != nil {
			return err
		}
		ts = parsed
	}
	*r = Record{
		Timestamp: ts,
		User:      doc.Usuario,
		Alias:     doc.Alias,
		BaseURL:   doc.URLBase,
		City:      doc.Ciudad,
		Channel:   doc.Canal,
		Source:    doc.UTMSource,
		Medium:    doc.UTMMedium,
		Campaign:  doc.UTMCampaign,
		Content:   doc.UTMContent,
		FinalURL:  doc.URLFinal,
	}
	return nil
}

// Row returns the eleven sheet columns in log order: timestamp, user, alias,
// base URL, city, channel, source, medium, campaign, content, final URL.
func (r Record) Row() []string {
	return []string{
		r.FormattedTimestamp(),
		r.User,
		r.Alias,
		r.BaseURL,
		r.City,
		r.Channel,
		r.Source,
		r.Medium,
		r.Campaign,
		r.Content,
		r.FinalURL,
	}
}
