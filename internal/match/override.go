// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/manlikeHB/skillsync/internal/metrics"
)

// ApplyOverride records an administrator override, superseding a prior
// algorithmic result when OriginalMatchID is set.
//
// The not-overridden -> overridden transition is a check-and-set at the
// result sink: the mark happens before the override record is written, so
// a Conflict aborts with nothing persisted. A match result can therefore
// be overridden at most once, even under concurrent attempts.
func (e *Engine) ApplyOverride(ctx context.Context, o Override) (*Override, error) {
	if err := validateOverride(o); err != nil {
		return nil, err
	}

	o.ID = uuid.NewString()
	o.CreatedAt = e.now()

	if o.OriginalMatchID != "" {
		ref := OverrideRef{
			OverrideID: o.ID,
			AdminID:    o.AdminID,
			AppliedAt:  o.CreatedAt,
		}
		if err := e.sink.MarkOverridden(ctx, o.OriginalMatchID, ref); err != nil {
			if errors.Is(err, ErrConflict) {
				metrics.OverrideConflicts.Inc()
			}
			return nil, fmt.Errorf("mark result %s overridden: %w", o.OriginalMatchID, err)
		}
	}

	if err := e.sink.SaveManualOverride(ctx, o); err != nil {
		return nil, fmt.Errorf("persist override: %w", err)
	}

	metrics.OverridesApplied.Inc()
	e.logger.Info().
		Str("override_id", o.ID).
		Str("admin_id", o.AdminID).
		Str("original_match_id", o.OriginalMatchID).
		Float64("score", o.OverrideScore).
		Msg("manual override applied")

	return &o, nil
}

// validateOverride rejects malformed overrides before any side effect.
func validateOverride(o Override) error {
	if o.AdminID == "" {
		return fmt.Errorf("%w: admin id is required", ErrInvalidArgument)
	}
	if o.SourceUserID == "" || o.TargetUserID == "" {
		return fmt.Errorf("%w: source and target user ids are required", ErrInvalidArgument)
	}
	if o.OverrideScore < 0 || o.OverrideScore > 1 {
		return fmt.Errorf("%w: override score %f outside [0,1]", ErrInvalidArgument, o.OverrideScore)
	}
	if o.OverrideConfidence < 0 || o.OverrideConfidence > 1 {
		return fmt.Errorf("%w: override confidence %f outside [0,1]", ErrInvalidArgument, o.OverrideConfidence)
	}
	return nil
}
