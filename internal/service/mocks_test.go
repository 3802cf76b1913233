package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/stillpoint/wellness-server-go/internal/model"
	"github.com/stillpoint/wellness-server-go/internal/repository"
)

type mockUserRepo struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	createFunc      func(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	countFunc       func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockUserRepo) WithTx(tx *sqlx.Tx) repository.UserRepository {
	return m
}

type mockSessionRepo struct {
	findPublishedFunc    func(ctx context.Context) ([]model.Session, error)
	findByOwnerFunc      func(ctx context.Context, ownerID string) ([]model.Session, error)
	findByIDAndOwnerFunc func(ctx context.Context, id, ownerID string) (*model.Session, error)
	createFunc           func(ctx context.Context, ownerID string, params model.SaveSessionParams) (*model.Session, error)
	updateFunc           func(ctx context.Context, id, ownerID string, params model.SaveSessionParams) (*model.Session, error)
	deleteFunc           func(ctx context.Context, id, ownerID string) (bool, error)
	countFunc            func(ctx context.Context) (int, error)
}

func (m *mockSessionRepo) FindPublished(ctx context.Context) ([]model.Session, error) {
	if m.findPublishedFunc != nil {
		return m.findPublishedFunc(ctx)
	}
	return nil, nil
}

func (m *mockSessionRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Session, error) {
	if m.findByOwnerFunc != nil {
		return m.findByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockSessionRepo) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Session, error) {
	if m.findByIDAndOwnerFunc != nil {
		return m.findByIDAndOwnerFunc(ctx, id, ownerID)
	}
	return nil, nil
}

func (m *mockSessionRepo) Create(ctx context.Context, ownerID string, params model.SaveSessionParams) (*model.Session, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, ownerID, params)
	}
	return nil, nil
}

func (m *mockSessionRepo) Update(ctx context.Context, id, ownerID string, params model.SaveSessionParams) (*model.Session, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, ownerID, params)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, ownerID)
	}
	return false, nil
}

func (m *mockSessionRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockSessionRepo) WithTx(tx *sqlx.Tx) repository.SessionRepository {
	return m
}

type fakeListingCache struct {
	listing       []model.Session
	warm          bool
	sets          int
	invalidations int
}

func (c *fakeListingCache) GetPublicListing(ctx context.Context) ([]model.Session, bool) {
	return c.listing, c.warm
}

func (c *fakeListingCache) SetPublicListing(ctx context.Context, sessions []model.Session) {
	c.listing = sessions
	c.warm = true
	c.sets++
}

func (c *fakeListingCache) InvalidatePublicListing(ctx context.Context) {
	c.listing = nil
	c.warm = false
	c.invalidations++
}
