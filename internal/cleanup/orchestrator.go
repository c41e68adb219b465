package cleanup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/auth0"
)

// TokenSource exchanges service credentials for a management access token.
// A fresh token is fetched for every record cycle; nothing is cached.
type TokenSource interface {
	FetchToken(ctx context.Context) (string, error)
}

// Resolver determines the canonical Auth0 user id for a record.
// found=false means no account matched any lookup path.
type Resolver interface {
	Resolve(ctx context.Context, token string, rec Record) (userID string, found bool, err error)
}

// Deleter removes an account by its canonical id.
type Deleter interface {
	DeleteUser(ctx context.Context, token, userID string) error
}

// Ledger durably records one outcome per processed record.
type Ledger interface {
	Append(ctx context.Context, out Outcome) error
}

// Orchestrator drives records through resolve -> delete -> ledger, one at a
// time, in input order. Failures while processing a record never escape the
// record boundary; they degrade to an ERROR outcome. Only ledger failures
// abort a run.
type Orchestrator struct {
	tokens   TokenSource
	resolver Resolver
	deleter  Deleter
	ledger   Ledger
	log      *zap.Logger

	now func() time.Time
}

func NewOrchestrator(
	tokens TokenSource,
	resolver Resolver,
	deleter Deleter,
	ledger Ledger,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		tokens:   tokens,
		resolver: resolver,
		deleter:  deleter,
		ledger:   ledger,
		log:      log,
		now:      time.Now,
	}
}

// ProcessOne classifies a single record into exactly one terminal status.
// It never returns an error: any failure from token exchange, resolution or
// deletion is captured verbatim in the outcome.
func (o *Orchestrator) ProcessOne(ctx context.Context, rec Record, dryRun bool) Outcome {
	out := Outcome{
		Ssoid:     rec.Ssoid,
		Email:     rec.Email,
		Timestamp: o.now().UTC(),
	}

	token, err := o.tokens.FetchToken(ctx)
	if err != nil {
		out.Status = StatusError
		out.Err = err.Error()
		return out
	}

	userID, found, err := o.resolver.Resolve(ctx, token, rec)
	// keep whatever was resolved before a failure, possibly nothing
	out.UserID = userID
	if err != nil {
		out.Status = StatusError
		out.Err = err.Error()
		return out
	}
	if !found {
		out.Status = StatusNotFound
		return out
	}

	if dryRun {
		out.Status = StatusDryRun
		return out
	}

	if err := o.deleter.DeleteUser(ctx, token, userID); err != nil {
		var nf *auth0.NotFoundError
		if errors.As(err, &nf) {
			// The account is already gone. That is the state the batch
			// wants, but this run did not delete it, so it is recorded as
			// NOT_FOUND rather than DELETED or ERROR.
			o.log.Warn("user already absent on delete",
				zap.String("user_id", userID),
			)
			out.Status = StatusNotFound
			return out
		}
		out.Status = StatusError
		out.Err = err.Error()
		return out
	}

	out.Status = StatusDeleted
	out.Deactivated = true
	return out
}

// Run processes every record sequentially and appends each outcome to the
// ledger in processing order before moving on. A ledger failure is job-fatal:
// the outcomes produced so far are returned together with the error.
func (o *Orchestrator) Run(ctx context.Context, recs []Record, dryRun bool) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(recs))

	for i, rec := range recs {
		out := o.ProcessOne(ctx, rec, dryRun)
		outcomes = append(outcomes, out)

		o.log.Info("record processed",
			zap.Int("index", i),
			zap.String("status", string(out.Status)),
			zap.String("user_id", out.UserID),
			zap.Bool("dry_run", dryRun),
		)

		if err := o.ledger.Append(ctx, out); err != nil {
			return outcomes, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return outcomes, nil
}
