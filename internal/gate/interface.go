// Package gate decides whether a client or company submission may be
// registered. It looks up every identifying field of the submission in the
// record store, turns the matches into a verdict, and for valid submissions
// normalizes the free-form payload into the record to persist.
//
// The client and company gates are the same engine configured by a Profile.
package gate

import (
	"context"
	"dedupgate/pkg/domain"
)

//go:generate mockgen -package mockgate -source=interface.go -destination=mock/mockgate.go *
type Validator interface {
	// Profile returns the configuration the validator was built with.
	Profile() Profile
	// Validate checks sub against the store. A store failure is returned as an
	// error of kind serrors.ErrUnavailable and no partial outcome.
	Validate(ctx context.Context, sub domain.Submission) (*domain.Outcome, error)
}
