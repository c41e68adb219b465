// Package ledger maintains the append-only CSV record of deletion outcomes
// in a remote object. The backing store has no append primitive, so every
// append is a read-modify-write of the whole object. The protocol assumes at
// most one writer per object; concurrent writers can silently lose rows.
package ledger

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/cleanup"
	"github.com/annerraquino/auth0-cleanup-sb/internal/storage"
)

// Header names the seven outcome columns, written exactly once per object.
const Header = "ssoid,email,auth0_user_id,status,deactivation_flag,last_update_timestamp,error"

const contentType = "text/csv; charset=utf-8"

// StorageError is any read/write failure against the remote object. It is
// never retried here and aborts the whole run: partial ledger state may
// already be inconsistent.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// CSVLedger appends outcome rows to one remote CSV object.
//
// The ledger holds no state between appends: whether the header is needed is
// derived from a fresh probe on every call, so a failed write leaves nothing
// behind that could suppress the header on the next attempt.
type CSVLedger struct {
	store storage.ObjectStore
	key   string
	log   *zap.Logger
}

func NewCSVLedger(store storage.ObjectStore, key string, log *zap.Logger) *CSVLedger {
	return &CSVLedger{store: store, key: key, log: log}
}

// Append records a single outcome.
func (l *CSVLedger) Append(ctx context.Context, out cleanup.Outcome) error {
	return l.AppendBatch(ctx, []cleanup.Outcome{out})
}

// AppendBatch records a group of outcomes in order, in one write.
func (l *CSVLedger) AppendBatch(ctx context.Context, outs []cleanup.Outcome) error {
	if len(outs) == 0 {
		return nil
	}

	info, err := l.store.Probe(ctx, l.key)
	if err != nil {
		return &StorageError{Op: "probe", Key: l.key, Err: err}
	}

	var rows bytes.Buffer
	if !info.Exists || info.Size == 0 {
		rows.WriteString(Header)
		rows.WriteByte('\n')
	}
	for _, out := range outs {
		rows.WriteString(formatRow(out))
		rows.WriteByte('\n')
	}

	payload := rows.Bytes()
	if info.Exists {
		existing, err := l.store.Read(ctx, l.key)
		if err != nil {
			return &StorageError{Op: "read", Key: l.key, Err: err}
		}
		payload = append(existing, payload...)
	}

	if err := l.store.Write(ctx, l.key, payload, contentType, info.ETag); err != nil {
		return &StorageError{Op: "write", Key: l.key, Err: err}
	}

	l.log.Info("ledger appended",
		zap.String("key", l.key),
		zap.Int("rows", len(outs)),
	)
	return nil
}

// formatRow serializes one outcome. Every field except the error message is a
// simple token; the error field can hold arbitrary text and is always quoted.
func formatRow(out cleanup.Outcome) string {
	flag := "N"
	if out.Deactivated {
		flag = "Y"
	}
	return strings.Join([]string{
		out.Ssoid,
		out.Email,
		out.UserID,
		string(out.Status),
		flag,
		out.Timestamp.Format(time.RFC3339),
		`"` + strings.ReplaceAll(out.Err, `"`, `""`) + `"`,
	}, ",")
}
