package repos

import (
	"github.com/jmoiron/sqlx"

	"vitrine/internal/domain"
)

// SessionRepo records anonymous visit sessions. Everything here is
// best-effort telemetry; writes are upserts so late or replayed signals
// never error.
type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Start(s domain.VisitSession) error {
	_, err := r.db.Exec(`
	  INSERT INTO visit_sessions(id, page_url, user_agent, started_at, last_seen_at)
	  VALUES(?,?,?,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET last_seen_at=CURRENT_TIMESTAMP
	`, s.ID, s.PageURL, s.UserAgent)
	return err
}

// Heartbeat bumps last_seen_at, creating the row if the start signal was
// lost. A heartbeat for an ended session is accepted and ignored upstream.
func (r *SessionRepo) Heartbeat(sessionID, pageURL string) error {
	_, err := r.db.Exec(`
	  INSERT INTO visit_sessions(id, page_url, started_at, last_seen_at)
	  VALUES(?,?,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET
	    page_url=excluded.page_url, last_seen_at=CURRENT_TIMESTAMP
	`, sessionID, pageURL)
	return err
}

func (r *SessionRepo) End(sessionID string) error {
	_, err := r.db.Exec(`
	  UPDATE visit_sessions SET ended_at=CURRENT_TIMESTAMP, last_seen_at=CURRENT_TIMESTAMP
	  WHERE id = ?
	`, sessionID)
	return err
}

type VisitRow struct {
	ID         string `db:"id"`
	PageURL    string `db:"page_url"`
	UserAgent  string `db:"user_agent"`
	StartedAt  string `db:"started_at"`
	LastSeenAt string `db:"last_seen_at"`
	EndedAt    string `db:"ended_at"`
}

func (r *SessionRepo) Get(sessionID string) (VisitRow, error) {
	var v VisitRow
	err := r.db.Get(&v, `
	  SELECT id, COALESCE(page_url,'') AS page_url, COALESCE(user_agent,'') AS user_agent,
	         started_at, COALESCE(last_seen_at,'') AS last_seen_at, COALESCE(ended_at,'') AS ended_at
	  FROM visit_sessions WHERE id = ?
	`, sessionID)
	return v, err
}
