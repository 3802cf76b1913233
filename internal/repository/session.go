package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/stillpoint/wellness-server-go/internal/model"
)

type SessionRepository interface {
	FindPublished(ctx context.Context) ([]model.Session, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Session, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Session, error)
	Create(ctx context.Context, ownerID string, params model.SaveSessionParams) (*model.Session, error)
	Update(ctx context.Context, id, ownerID string, params model.SaveSessionParams) (*model.Session, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
	Count(ctx context.Context) (int, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) SessionRepository
}

type sessionRepo struct {
	db sqlxDB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) WithTx(tx *sqlx.Tx) SessionRepository {
	return &sessionRepo{db: tx}
}

func (r *sessionRepo) FindPublished(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT s.*, u.email AS owner_email
		FROM sessions s
		JOIN users u ON u.id = s.owner_id
		WHERE s.status = 'published'
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT s.*, u.email AS owner_email
		FROM sessions s
		JOIN users u ON u.id = s.owner_id
		WHERE s.owner_id = $1
		ORDER BY s.updated_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindByIDAndOwner returns nil for sessions owned by someone else; callers
// cannot distinguish missing from not-owned.
func (r *sessionRepo) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		SELECT s.*, u.email AS owner_email
		FROM sessions s
		JOIN users u ON u.id = s.owner_id
		WHERE s.id = $1 AND s.owner_id = $2
	`, id, ownerID)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) Create(ctx context.Context, ownerID string, params model.SaveSessionParams) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO sessions (id, owner_id, title, description, tags, video_url, thumbnail, duration, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *, (SELECT email FROM users WHERE id = sessions.owner_id) AS owner_email
	`, uuid.NewString(), ownerID, params.Title, params.Description, params.Tags,
		params.VideoURL, params.Thumbnail, params.Duration, params.Status)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Update(ctx context.Context, id, ownerID string, params model.SaveSessionParams) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		UPDATE sessions SET
			title = $3,
			description = $4,
			tags = $5,
			video_url = $6,
			thumbnail = $7,
			duration = $8,
			status = $9,
			updated_at = $10
		WHERE id = $1 AND owner_id = $2
		RETURNING *, (SELECT email FROM users WHERE id = sessions.owner_id) AS owner_email
	`, id, ownerID, params.Title, params.Description, params.Tags,
		params.VideoURL, params.Thumbnail, params.Duration, params.Status, time.Now())
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sessions`)
	return count, err
}
