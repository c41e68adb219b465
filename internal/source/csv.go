// Package source reads the input feed of deletion records from a remote CSV
// object. Input files arrive from several upstream exports, so the reader
// accepts either a header row (user_id/email/ssoid in any order) or bare
// positional columns, and strips stray spreadsheet quoting from cells.
package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/cleanup"
	"github.com/annerraquino/auth0-cleanup-sb/internal/storage"
)

// positional layout when no header row is present
const (
	colUserID = 0
	colEmail  = 1
	colSsoid  = 2
)

// Load fetches and parses the input object into records. Any failure is
// job-fatal; no records are processed from an unreadable feed.
func Load(ctx context.Context, store storage.ObjectStore, key string, log *zap.Logger) ([]cleanup.Record, error) {
	body, err := store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("input feed %s: %w", key, err)
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("input feed %s: parse: %w", key, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := map[string]int{"user_id": colUserID, "email": colEmail, "ssoid": colSsoid}
	start := 0
	if isHeader(rows[0]) {
		for i, cell := range rows[0] {
			idx[strings.ToLower(strings.TrimSpace(cell))] = i
		}
		start = 1
	}

	recs := make([]cleanup.Record, 0, len(rows)-start)
	for _, row := range rows[start:] {
		rec := cleanup.Record{
			UserID: cell(row, idx["user_id"]),
			Email:  cell(row, idx["email"]),
			Ssoid:  cell(row, idx["ssoid"]),
		}
		if rec.UserID == "" && rec.Email == "" && rec.Ssoid == "" {
			continue
		}
		recs = append(recs, rec)
	}

	log.Info("input feed loaded",
		zap.String("key", key),
		zap.Int("records", len(recs)),
	)
	return recs, nil
}

func isHeader(row []string) bool {
	for _, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "user_id", "email", "ssoid":
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return clean(row[i])
}

// clean removes surrounding quotes and the leading apostrophe spreadsheets
// prepend to force text cells.
func clean(v string) string {
	s := strings.TrimSpace(v)
	s = strings.TrimPrefix(s, "'")
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
