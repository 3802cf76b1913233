package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/stillpoint/wellness-server-go/internal/middleware"
	"github.com/stillpoint/wellness-server-go/internal/model"
	"github.com/stillpoint/wellness-server-go/internal/repository"
)

// memUserRepo is a map-backed UserRepository for handler tests.
type memUserRepo struct {
	users  map[string]*model.User // keyed by id
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	m.nextID++
	u := &model.User{
		ID:           fmt.Sprintf("user-%d", m.nextID),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUserRepo) Count(ctx context.Context) (int, error) {
	return len(m.users), nil
}

func (m *memUserRepo) WithTx(tx *sqlx.Tx) repository.UserRepository {
	return m
}

// memSessionRepo is a map-backed SessionRepository for handler tests.
// ownerEmails stands in for the users join on reads.
type memSessionRepo struct {
	sessions    map[string]*model.Session
	ownerEmails map[string]string
	nextID      int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{
		sessions:    map[string]*model.Session{},
		ownerEmails: map[string]string{},
	}
}

func (m *memSessionRepo) hydrated(s model.Session) model.Session {
	s.OwnerEmail = m.ownerEmails[s.OwnerID]
	return s
}

func (m *memSessionRepo) FindPublished(ctx context.Context) ([]model.Session, error) {
	var out []model.Session
	for _, s := range m.sessions {
		if s.Status == model.SessionStatusPublished {
			out = append(out, m.hydrated(*s))
		}
	}
	return out, nil
}

func (m *memSessionRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Session, error) {
	var out []model.Session
	for _, s := range m.sessions {
		if s.OwnerID == ownerID {
			out = append(out, m.hydrated(*s))
		}
	}
	return out, nil
}

func (m *memSessionRepo) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return nil, nil
	}
	c := m.hydrated(*s)
	return &c, nil
}

func (m *memSessionRepo) Create(ctx context.Context, ownerID string, params model.SaveSessionParams) (*model.Session, error) {
	m.nextID++
	s := &model.Session{
		ID:          fmt.Sprintf("sess-%d", m.nextID),
		OwnerID:     ownerID,
		Title:       params.Title,
		Description: params.Description,
		Tags:        params.Tags,
		VideoURL:    params.VideoURL,
		Thumbnail:   params.Thumbnail,
		Duration:    params.Duration,
		Status:      params.Status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.sessions[s.ID] = s
	c := m.hydrated(*s)
	return &c, nil
}

func (m *memSessionRepo) Update(ctx context.Context, id, ownerID string, params model.SaveSessionParams) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return nil, nil
	}
	s.Title = params.Title
	s.Description = params.Description
	s.Tags = params.Tags
	s.VideoURL = params.VideoURL
	s.Thumbnail = params.Thumbnail
	s.Duration = params.Duration
	s.Status = params.Status
	s.UpdatedAt = time.Now()
	c := m.hydrated(*s)
	return &c, nil
}

func (m *memSessionRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	s, ok := m.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return false, nil
	}
	delete(m.sessions, id)
	return true, nil
}

func (m *memSessionRepo) Count(ctx context.Context) (int, error) {
	return len(m.sessions), nil
}

func (m *memSessionRepo) WithTx(tx *sqlx.Tx) repository.SessionRepository {
	return m
}

// authAs returns a middleware stub that attaches user to every request.
func authAs(user *model.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
