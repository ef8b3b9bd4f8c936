package tokeninspect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Inspector reads a token from a Store and reports whether it is absent,
// malformed or expired. It never writes to the store and keeps no state
// between calls, so one Inspector is safe for concurrent use.
type Inspector struct {
	store      Store
	key        string
	logger     *slog.Logger
	clock      Clock
	layout     string
	location   *time.Location
	cookieName string
	validators map[string]algorithmValidator
}

// NewInspector creates an Inspector reading from store with the given options
func NewInspector(store Store, opts ...Option) (*Inspector, error) {
	if store == nil {
		return nil, NewInspectionError(ErrConfigError, "store cannot be nil", nil)
	}

	insp := &Inspector{
		store:      store,
		key:        DefaultStorageKey,
		clock:      systemClock{},
		layout:     time.RFC3339,
		location:   time.UTC,
		validators: make(map[string]algorithmValidator),
	}

	for _, opt := range opts {
		if err := opt(insp); err != nil {
			return nil, NewInspectionError(ErrConfigError, fmt.Sprintf("configuration error: %v", err), err)
		}
	}

	return insp, nil
}

// Inspect reads the token stored under the configured key and reports on it.
// Every outcome, including store failures, is returned in the Report and
// logged; Inspect never panics on bad input.
func (i *Inspector) Inspect(ctx context.Context) Report {
	startTime := time.Now()

	value, found, err := i.store.Get(ctx, i.key)
	if err != nil {
		report := i.newReport(i.key)
		report.Status = StatusUnavailable
		report.Err = NewInspectionError(ErrStoreUnavailable, fmt.Sprintf("reading key %q failed", i.key), err)
		i.log(ctx, "", report, time.Since(startTime))
		return report
	}
	if !found {
		value = ""
	}

	return i.inspect(ctx, i.key, value, startTime)
}

// InspectToken reports on a token obtained elsewhere, such as a request
// header. source names where it came from in the Report and in logs.
func (i *Inspector) InspectToken(ctx context.Context, source, token string) Report {
	return i.inspect(ctx, source, token, time.Now())
}

func (i *Inspector) inspect(ctx context.Context, source, token string, startTime time.Time) Report {
	token = strings.TrimSpace(token)
	report := i.newReport(source)

	if token == "" {
		report.Status = StatusAbsent
		i.log(ctx, "", report, time.Since(startTime))
		return report
	}

	report.Algorithm = decodeAlgorithm(token)

	claims, err := decodeClaims(token)
	if err != nil {
		report.Status = StatusMalformed
		report.Err = err
		i.log(ctx, token, report, time.Since(startTime))
		return report
	}
	report.Claims = claims

	expiresAt, err := claims.ExpiresAt()
	if err != nil {
		report.Status = StatusMalformed
		report.Err = err
		i.log(ctx, token, report, time.Since(startTime))
		return report
	}

	report.Status = StatusPresent
	report.ExpiresAt = expiresAt
	report.Expired = expiresAt.Before(report.Now)

	if len(i.validators) > 0 {
		if err := i.verifySignature(token); err != nil {
			report.VerifyErr = err
		} else {
			report.Verified = true
		}
	}

	i.log(ctx, token, report, time.Since(startTime))
	return report
}

// newReport stamps the comparison time once, truncated to whole seconds.
func (i *Inspector) newReport(source string) Report {
	return Report{
		Source:   source,
		Now:      time.Unix(i.clock.Now().Unix(), 0),
		layout:   i.layout,
		location: i.location,
	}
}

// failed builds a report for a token that could not even be extracted from
// its carrier, e.g. a non-Bearer Authorization header.
func (i *Inspector) failed(ctx context.Context, source string, err error) Report {
	report := i.newReport(source)
	if CodeOf(err) == ErrMissingToken {
		report.Status = StatusAbsent
	} else {
		report.Status = StatusMalformed
		report.Err = err
	}
	i.log(ctx, "", report, 0)
	return report
}
