package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/meridianlabs/converse/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// migrate runs database migrations. The messages table materializes insertion
// order with an AUTOINCREMENT sequence; ordering never relies on timestamps.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			message_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_owner ON sessions(owner, updated_at)`,
		`CREATE TABLE IF NOT EXISTS messages (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			message_id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, seq)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, owner, name, created_at, updated_at, message_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.SessionID, session.Owner, session.Name,
		session.CreatedAt.UTC(), session.UpdatedAt.UTC(), session.MessageCount,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("session %s: %w", session.SessionID, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT session_id, owner, name, created_at, updated_at, message_count
		 FROM sessions WHERE session_id = ?`, sessionID)

	var session domain.Session
	err := row.Scan(&session.SessionID, &session.Owner, &session.Name,
		&session.CreatedAt, &session.UpdatedAt, &session.MessageCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (s *SQLiteStore) ListSessions(ctx context.Context, owner string) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, owner, name, created_at, updated_at, message_count
		 FROM sessions WHERE owner = ?
		 ORDER BY updated_at DESC, session_id ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(&session.SessionID, &session.Owner, &session.Name,
			&session.CreatedAt, &session.UpdatedAt, &session.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *SQLiteStore) UpdateSessionName(ctx context.Context, sessionID, name string, updatedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET name = ?, updated_at = ? WHERE session_id = ?`,
		name, updatedAt.UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session name: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) BumpSession(ctx context.Context, sessionID string, delta int, updatedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET message_count = message_count + ?, updated_at = ? WHERE session_id = ?`,
		delta, updatedAt.UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to bump session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) AppendMessage(ctx context.Context, message *domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, session_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		message.MessageID, message.SessionID, string(message.Role),
		message.Content, message.CreatedAt.UTC())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			// The foreign key is the only way an insert here can violate a
			// constraint against another row: the session does not exist.
			if sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
				return fmt.Errorf("session %s: %w", message.SessionID, domain.ErrNotFound)
			}
			return fmt.Errorf("message %s: %w", message.MessageID, domain.ErrConflict)
		}
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, session_id, role, content, created_at
		 FROM messages WHERE session_id = ?
		 ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		var role string
		if err := rows.Scan(&msg.MessageID, &msg.SessionID, &role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = domain.Role(role)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
