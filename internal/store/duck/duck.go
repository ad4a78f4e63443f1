// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

/*
duck.go - DuckDB-backed store

Durable implementation of the profile store, result sink, and
interaction-history store contracts on a single DuckDB file (or
in-memory database for tests).

Tables:
  - profiles: one row per user; attribute/preference/weight/filter maps
    are stored as JSON text and round-tripped through the profile types
  - match_results: persisted engine output; the override columns start
    NULL and are written at most once by MarkOverridden
  - manual_overrides: administrator overrides, append-only
  - completed_matches: historical matches with their feedback as JSON

Override atomicity:
MarkOverridden is a conditional UPDATE guarded by override_id IS NULL.
DuckDB serializes the update, so of two concurrent override attempts
exactly one sees the NULL and wins; the loser maps to ErrConflict.
*/
package duck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	json "github.com/goccy/go-json"

	"github.com/manlikeHB/skillsync/internal/collab"
	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/profile"
)

// Config holds DuckDB connection settings.
type Config struct {
	// Path is the database file, or ":memory:" for an ephemeral store.
	Path string `koanf:"path" validate:"required"`

	// MaxOpenConns bounds the connection pool. Defaults to 4.
	MaxOpenConns int `koanf:"max_open_conns" validate:"min=0"`
}

// Store is the DuckDB-backed store.
type Store struct {
	conn *sql.DB
}

// Open connects to DuckDB and bootstraps the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	conn, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb at %s: %w", cfg.Path, err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 4
	}
	conn.SetMaxOpenConns(maxConns)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.createTables(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			attributes TEXT NOT NULL,
			preferences TEXT NOT NULL,
			weights TEXT NOT NULL,
			filters TEXT NOT NULL,
			is_active BOOLEAN NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS match_results (
			id TEXT PRIMARY KEY,
			source_user_id TEXT NOT NULL,
			target_user_id TEXT NOT NULL,
			score DOUBLE NOT NULL,
			confidence DOUBLE NOT NULL,
			algorithm TEXT NOT NULL,
			reasons TEXT NOT NULL,
			metadata TEXT,
			override_id TEXT,
			override_admin_id TEXT,
			override_applied_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS manual_overrides (
			id TEXT PRIMARY KEY,
			source_user_id TEXT NOT NULL,
			target_user_id TEXT NOT NULL,
			override_score DOUBLE NOT NULL,
			override_confidence DOUBLE NOT NULL,
			reason TEXT,
			admin_id TEXT NOT NULL,
			original_match_id TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS completed_matches (
			id TEXT PRIMARY KEY,
			mentor_id TEXT NOT NULL,
			mentee_id TEXT NOT NULL,
			algorithm_score DOUBLE NOT NULL,
			start_date TIMESTAMP,
			end_date TIMESTAMP,
			feedback TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_active ON profiles (is_active, updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_results_source ON match_results (source_user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_history_mentor ON completed_matches (mentor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_history_mentee ON completed_matches (mentee_id)`,
	}
	for _, query := range queries {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}
	return nil
}

// GetProfile implements match.ProfileStore.
func (s *Store) GetProfile(ctx context.Context, userID string) (*profile.Profile, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT user_id, type, attributes, preferences, weights, filters, is_active, updated_at
		FROM profiles WHERE user_id = ?`, userID)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, match.ErrNotFound)
	}
	return p, err
}

// ListActiveCandidates implements match.ProfileStore.
func (s *Store) ListActiveCandidates(ctx context.Context, excludeUserID string, limit int) ([]*profile.Profile, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT user_id, type, attributes, preferences, weights, filters, is_active, updated_at
		FROM profiles
		WHERE is_active AND user_id != ?
		ORDER BY updated_at DESC
		LIMIT ?`, excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []*profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertProfile implements match.ProfileStore.
func (s *Store) UpsertProfile(ctx context.Context, p *profile.Profile) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}
	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	weights, err := json.Marshal(p.Weights)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	filters, err := json.Marshal(p.Filters)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO profiles
			(user_id, type, attributes, preferences, weights, filters, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, string(p.Type), string(attrs), string(prefs),
		string(weights), string(filters), p.IsActive, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.UserID, err)
	}
	return nil
}

// SaveMatchResults implements match.ResultSink.
func (s *Store) SaveMatchResults(ctx context.Context, results []match.Result) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save results: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range results {
		reasons, err := json.Marshal(r.Reasons)
		if err != nil {
			return fmt.Errorf("encode reasons: %w", err)
		}
		metadata, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO match_results
				(id, source_user_id, target_user_id, score, confidence,
				 algorithm, reasons, metadata, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.SourceUserID, r.TargetUserID, r.Score, r.Confidence,
			r.Algorithm, string(reasons), string(metadata), r.CreatedAt)
		if err != nil {
			return fmt.Errorf("save result %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// GetMatchResult implements match.ResultSink.
func (s *Store) GetMatchResult(ctx context.Context, id string) (*match.Result, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, source_user_id, target_user_id, score, confidence,
		       algorithm, reasons, metadata,
		       override_id, override_admin_id, override_applied_at, created_at
		FROM match_results WHERE id = ?`, id)

	var r match.Result
	var reasons, metadata sql.NullString
	var overrideID, overrideAdmin sql.NullString
	var appliedAt sql.NullTime
	err := row.Scan(&r.ID, &r.SourceUserID, &r.TargetUserID, &r.Score, &r.Confidence,
		&r.Algorithm, &reasons, &metadata, &overrideID, &overrideAdmin, &appliedAt, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match result %s: %w", id, match.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load result %s: %w", id, err)
	}

	if reasons.Valid {
		if err := json.Unmarshal([]byte(reasons.String), &r.Reasons); err != nil {
			return nil, fmt.Errorf("decode reasons: %w", err)
		}
	}
	if metadata.Valid && metadata.String != "null" {
		if err := json.Unmarshal([]byte(metadata.String), &r.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}
	if overrideID.Valid {
		r.Override = &match.OverrideRef{
			OverrideID: overrideID.String,
			AdminID:    overrideAdmin.String,
			AppliedAt:  appliedAt.Time,
		}
	}
	return &r, nil
}

// SaveManualOverride implements match.ResultSink.
func (s *Store) SaveManualOverride(ctx context.Context, o match.Override) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO manual_overrides
			(id, source_user_id, target_user_id, override_score, override_confidence,
			 reason, admin_id, original_match_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.SourceUserID, o.TargetUserID, o.OverrideScore, o.OverrideConfidence,
		o.Reason, o.AdminID, o.OriginalMatchID, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("save override %s: %w", o.ID, err)
	}
	return nil
}

// MarkOverridden implements match.ResultSink via a conditional UPDATE:
// only a row whose override_id is still NULL is written.
func (s *Store) MarkOverridden(ctx context.Context, matchResultID string, ref match.OverrideRef) error {
	res, err := s.conn.ExecContext(ctx, `
		UPDATE match_results
		SET override_id = ?, override_admin_id = ?, override_applied_at = ?
		WHERE id = ? AND override_id IS NULL`,
		ref.OverrideID, ref.AdminID, ref.AppliedAt, matchResultID)
	if err != nil {
		return fmt.Errorf("mark overridden %s: %w", matchResultID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark overridden %s: %w", matchResultID, err)
	}
	if affected == 1 {
		return nil
	}

	// The guarded update missed: distinguish an unknown result from an
	// already-overridden one.
	var exists bool
	err = s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) > 0 FROM match_results WHERE id = ?`, matchResultID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("mark overridden %s: %w", matchResultID, err)
	}
	if !exists {
		return fmt.Errorf("match result %s: %w", matchResultID, match.ErrNotFound)
	}
	return fmt.Errorf("match result %s already overridden: %w", matchResultID, match.ErrConflict)
}

// AddCompletedMatch records one historical match.
func (s *Store) AddCompletedMatch(ctx context.Context, hm collab.HistoricalMatch) error {
	feedback, err := json.Marshal(hm.Feedback)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	_, err = s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO completed_matches
			(id, mentor_id, mentee_id, algorithm_score, start_date, end_date, feedback)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		hm.ID, hm.MentorID, hm.MenteeID, hm.AlgorithmScore,
		hm.StartDate, hm.EndDate, string(feedback))
	if err != nil {
		return fmt.Errorf("save completed match %s: %w", hm.ID, err)
	}
	return nil
}

// ListCompletedMatches implements collab.HistoryStore.
func (s *Store) ListCompletedMatches(ctx context.Context, userID string, ptype profile.Type) ([]collab.HistoricalMatch, error) {
	query := `
		SELECT id, mentor_id, mentee_id, algorithm_score, start_date, end_date, feedback
		FROM completed_matches`
	var args []any

	switch {
	case userID == "":
	case ptype == profile.TypeMentor:
		query += ` WHERE mentor_id = ?`
		args = append(args, userID)
	case ptype == profile.TypeMentee:
		query += ` WHERE mentee_id = ?`
		args = append(args, userID)
	default:
		query += ` WHERE mentor_id = ? OR mentee_id = ?`
		args = append(args, userID, userID)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completed matches: %w", err)
	}
	defer rows.Close()

	var out []collab.HistoricalMatch
	for rows.Next() {
		var hm collab.HistoricalMatch
		var start, end sql.NullTime
		var feedback sql.NullString
		if err := rows.Scan(&hm.ID, &hm.MentorID, &hm.MenteeID, &hm.AlgorithmScore,
			&start, &end, &feedback); err != nil {
			return nil, fmt.Errorf("scan completed match: %w", err)
		}
		hm.StartDate = start.Time
		hm.EndDate = end.Time
		if feedback.Valid && feedback.String != "null" {
			if err := json.Unmarshal([]byte(feedback.String), &hm.Feedback); err != nil {
				return nil, fmt.Errorf("decode feedback: %w", err)
			}
		}
		out = append(out, hm)
	}
	return out, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared profile scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*profile.Profile, error) {
	var p profile.Profile
	var ptype string
	var attrs, prefs, weights, filters string
	err := row.Scan(&p.UserID, &ptype, &attrs, &prefs, &weights, &filters,
		&p.IsActive, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Type = profile.Type(ptype)
	if err := json.Unmarshal([]byte(attrs), &p.Attributes); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	if err := json.Unmarshal([]byte(prefs), &p.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	if weights != "null" {
		if err := json.Unmarshal([]byte(weights), &p.Weights); err != nil {
			return nil, fmt.Errorf("decode weights: %w", err)
		}
	}
	if filters != "null" {
		if err := json.Unmarshal([]byte(filters), &p.Filters); err != nil {
			return nil, fmt.Errorf("decode filters: %w", err)
		}
	}
	return &p, nil
}
