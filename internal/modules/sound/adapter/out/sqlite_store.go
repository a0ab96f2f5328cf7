package out

import (
	"context"
	"database/sql"
	"fmt"

	"dwell/internal/modules/sound/domain"
	soundout "dwell/internal/modules/sound/port/out"
	"dwell/internal/platform/timeutil"
)

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (soundout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sound_sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_date TEXT NOT NULL,
  device_id TEXT NOT NULL,
  device_name TEXT NOT NULL,
  device_type TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  listening_seconds INTEGER NOT NULL,
  avg_volume REAL NOT NULL,
  estimated_max_db REAL NOT NULL,
  was_harmful INTEGER NOT NULL,
  harmful_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sound_sessions_date ON sound_sessions(session_date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sound tables: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) InsertSession(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sound_sessions (session_date, device_id, device_name, device_type, start_time, end_time, listening_seconds, avg_volume, estimated_max_db, was_harmful, harmful_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	harmful := 0
	if session.WasHarmful {
		harmful = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		session.SessionDate,
		session.DeviceID,
		session.DeviceName,
		session.DeviceType.String(),
		timeutil.FormatStamp(session.Start),
		timeutil.FormatStamp(session.End),
		session.ListeningSeconds,
		session.AvgVolume,
		session.EstimatedMaxDB,
		harmful,
		session.HarmfulSeconds,
	)
	if err != nil {
		return fmt.Errorf("insert sound session: %w", err)
	}
	return nil
}
