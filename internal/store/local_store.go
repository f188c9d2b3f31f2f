// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/models"
)

const quotaProbeSize = 4 << 10

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type sqliteLocalStore struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewLocalStore builds the SQLite-backed [LocalStore] on top of a migrated
// database.
func NewLocalStore(db *DB, log *logger.Logger) (LocalStore, error) {
	if db == nil || db.DB == nil {
		return nil, ErrNilDB
	}
	return &sqliteLocalStore{
		db:     db,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// ── trips ─────────────────────────────────────────────────────────────────────

func (s *sqliteLocalStore) PutTrip(ctx context.Context, trip models.CachedTrip) error {
	if trip.TripID == "" {
		return ErrEmptyTripID
	}

	now := s.now()
	_, err := s.db.ExecContext(ctx, upsertTrip,
		trip.TripID,
		trip.UserID,
		[]byte(trip.Payload),
		trip.IsSynced,
		now,
		now,
	)
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteLocalStore.PutTrip").
			Str("trip_id", trip.TripID).
			Str("class", s.db.errorClassificator.Classify(err).String()).
			Msg("failed to upsert trip")
		return wrapWriteError(s.db.errorClassificator, ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteLocalStore) GetTrip(ctx context.Context, tripID string) (*models.CachedTrip, error) {
	if tripID == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, getTrip, tripID)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteLocalStore.GetTrip").
			Str("trip_id", tripID).
			Msg("failed to read trip")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	// the read itself succeeded; a failed touch only costs LRU accuracy
	now := s.now()
	if _, err = s.db.ExecContext(ctx, touchTrip, now, tripID); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "sqliteLocalStore.GetTrip").
			Str("trip_id", tripID).
			Msg("failed to refresh last_accessed")
	} else {
		trip.LastAccessed = now
	}

	return &trip, nil
}

func (s *sqliteLocalStore) ListTripsByUser(ctx context.Context, userID string) ([]models.CachedTrip, error) {
	query, args, err := builder.
		Select(tripColumns...).
		From(tripsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("last_accessed DESC", "trip_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteLocalStore.ListTripsByUser").
			Str("user_id", userID).
			Msg("failed to query trips")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	trips := make([]models.CachedTrip, 0)
	for rows.Next() {
		trip, scanErr := scanTrip(rows)
		if scanErr != nil {
			s.logger.Err(scanErr).
				Str("func", "sqliteLocalStore.ListTripsByUser").
				Str("user_id", userID).
				Msg("failed to scan trip row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		trips = append(trips, trip)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return trips, nil
}

func (s *sqliteLocalStore) RemoveTrip(ctx context.Context, tripID string) error {
	if _, err := s.db.ExecContext(ctx, deleteTrip, tripID); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteLocalStore.RemoveTrip").
			Str("trip_id", tripID).
			Msg("failed to delete trip")
		return wrapWriteError(s.db.errorClassificator, ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteLocalStore) MarkTripSynced(ctx context.Context, tripID string, opID int64) error {
	if _, err := s.db.ExecContext(ctx, markTripSynced, tripID, tripID, opID); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteLocalStore.MarkTripSynced").
			Str("trip_id", tripID).
			Int64("op_id", opID).
			Msg("failed to mark trip as synced")
		return wrapWriteError(s.db.errorClassificator, ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteLocalStore) CountTrips(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countTrips).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

// ── sync queue ────────────────────────────────────────────────────────────────

func (s *sqliteLocalStore) EnqueueOperation(ctx context.Context, op models.SyncOperation) (models.SyncOperation, error) {
	if !op.Type.Valid() {
		return models.SyncOperation{}, fmt.Errorf("%w: unknown type %q", ErrInvalidOperation, op.Type)
	}
	if op.Type != models.OperationCreate && op.TripIDValue() == "" {
		return models.SyncOperation{}, fmt.Errorf("%w: %s without trip id", ErrInvalidOperation, op.Type)
	}

	op.Status = models.OperationPending
	op.Retries = 0
	op.LastError = nil
	op.Timestamp = s.now()

	res, err := s.db.ExecContext(ctx, insertOperation,
		string(op.Type),
		nullString(op.TripID),
		op.UserID,
		nullBytes(op.Payload),
		string(op.Status),
		op.Timestamp,
	)
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteLocalStore.EnqueueOperation").
			Str("type", string(op.Type)).
			Str("trip_id", op.TripIDValue()).
			Msg("failed to enqueue sync operation")
		return models.SyncOperation{}, wrapWriteError(s.db.errorClassificator, ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.SyncOperation{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	op.ID = id

	return op, nil
}

func (s *sqliteLocalStore) ListPending(ctx context.Context) ([]models.SyncOperation, error) {
	return s.ListOperations(ctx, models.OperationPending)
}

func (s *sqliteLocalStore) ListOperations(ctx context.Context, statuses ...models.OperationStatus) ([]models.SyncOperation, error) {
	qb := builder.Select(operationColumns...).From(syncQueueTable).OrderBy("id")
	if len(statuses) > 0 {
		qb = qb.Where(sq.Eq{"status": statusStrings(statuses)})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteLocalStore.ListOperations").
			Msg("failed to query sync queue")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ops := make([]models.SyncOperation, 0)
	for rows.Next() {
		op, scanErr := scanOperation(rows)
		if scanErr != nil {
			s.logger.Err(scanErr).
				Str("func", "sqliteLocalStore.ListOperations").
				Msg("failed to scan sync operation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ops, nil
}

func (s *sqliteLocalStore) CountOperations(ctx context.Context, statuses ...models.OperationStatus) (int, error) {
	qb := builder.Select("COUNT(*)").From(syncQueueTable)
	if len(statuses) > 0 {
		qb = qb.Where(sq.Eq{"status": statusStrings(statuses)})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func (s *sqliteLocalStore) UpdateOperation(ctx context.Context, op models.SyncOperation) error {
	res, err := s.db.ExecContext(ctx, updateOperation,
		string(op.Status),
		op.Retries,
		nullString(op.LastError),
		op.ID,
	)
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteLocalStore.UpdateOperation").
			Int64("op_id", op.ID).
			Str("status", string(op.Status)).
			Msg("failed to update sync operation")
		return wrapWriteError(s.db.errorClassificator, ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrOperationNotFound
	}

	return nil
}

func (s *sqliteLocalStore) ResetFailedPermanent(ctx context.Context) (int, error) {
	return s.execCount(ctx, "sqliteLocalStore.ResetFailedPermanent", resetFailedPermanent)
}

func (s *sqliteLocalStore) PurgeCompleted(ctx context.Context) (int, error) {
	return s.execCount(ctx, "sqliteLocalStore.PurgeCompleted", purgeCompleted)
}

func (s *sqliteLocalStore) execCount(ctx context.Context, fn, stmt string) (int, error) {
	res, err := s.db.ExecContext(ctx, stmt)
	if err != nil {
		s.logger.Err(err).Str("func", fn).Msg("failed to execute statement")
		return 0, wrapWriteError(s.db.errorClassificator, ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return int(affected), nil
}

// ── metadata ──────────────────────────────────────────────────────────────────

func (s *sqliteLocalStore) LastSync(ctx context.Context) (*time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, getMetadata, lastSyncKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed lastSync %q: %w", ErrScanningRow, raw, err)
	}
	return &at, nil
}

func (s *sqliteLocalStore) SetLastSync(ctx context.Context, at time.Time) error {
	if _, err := s.db.ExecContext(ctx, upsertMetadata, lastSyncKey, at.UTC().Format(time.RFC3339Nano)); err != nil {
		s.logger.Err(err).Str("func", "sqliteLocalStore.SetLastSync").Msg("failed to store lastSync")
		return wrapWriteError(s.db.errorClassificator, ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteLocalStore) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range []string{clearTrips, clearSyncQueue, clearMetadata} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			s.logger.Err(err).Str("func", "sqliteLocalStore.ClearAll").Msg("failed to clear table")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	s.logger.Info().Str("func", "sqliteLocalStore.ClearAll").Msg("local store cleared")
	return nil
}

func (s *sqliteLocalStore) ProbeQuota(ctx context.Context) error {
	probe := strings.Repeat("x", quotaProbeSize)
	if _, err := s.db.ExecContext(ctx, upsertMetadata, quotaProbeKey, probe); err != nil {
		s.logger.Warn().Err(err).Str("func", "sqliteLocalStore.ProbeQuota").Msg("quota probe write failed")
		return wrapWriteError(s.db.errorClassificator, ErrExecutingStatement, err)
	}

	if _, err := s.db.ExecContext(ctx, deleteMetadata, quotaProbeKey); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteLocalStore) Close() error {
	return s.db.Close()
}

// ── scanning helpers ──────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (models.CachedTrip, error) {
	var (
		trip    models.CachedTrip
		payload []byte
	)
	err := row.Scan(
		&trip.TripID,
		&trip.UserID,
		&payload,
		&trip.IsSynced,
		&trip.CachedAt,
		&trip.LastAccessed,
	)
	trip.Payload = payload
	return trip, err
}

func scanOperation(row rowScanner) (models.SyncOperation, error) {
	var (
		op        models.SyncOperation
		opType    string
		status    string
		tripID    sql.NullString
		payload   []byte
		lastError sql.NullString
	)
	err := row.Scan(
		&op.ID,
		&opType,
		&tripID,
		&op.UserID,
		&payload,
		&status,
		&op.Retries,
		&op.Timestamp,
		&lastError,
	)
	if err != nil {
		return models.SyncOperation{}, err
	}

	op.Type = models.OperationType(opType)
	op.Status = models.OperationStatus(status)
	op.Payload = payload
	if tripID.Valid {
		op.TripID = &tripID.String
	}
	if lastError.Valid {
		op.LastError = &lastError.String
	}
	return op, nil
}

func statusStrings(statuses []models.OperationStatus) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
