package models

import (
	"encoding/json"
	"time"
)

// FileType distinguishes the two media kinds the backend stores.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// Post is a single feed entry. IsOwner and Email are enrichment fields the
// backend computes per requesting user; they are absent from upload responses.
type Post struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Caption   string   `json:"caption"`
	URL       string   `json:"url"`
	FileType  FileType `json:"file_type"`
	FileName  string   `json:"file_name"`
	CreatedAt Time     `json:"created_at"`
	IsOwner   bool     `json:"is_owner"`
	Email     string   `json:"email"`
}

// Feed is the GET /feed response envelope.
type Feed struct {
	Posts []*Post `json:"posts"`
}

// Time accepts both RFC 3339 timestamps and the zone-less ISO-8601 variants
// the backend emits for naive datetimes (e.g. "2026-01-02T15:04:05.123456").
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var err error
	for _, layout := range timeLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return err
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}
