package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/stillpoint/wellness-server-go/internal/apperr"
	"github.com/stillpoint/wellness-server-go/internal/config"
	"github.com/stillpoint/wellness-server-go/internal/model"
	"github.com/stillpoint/wellness-server-go/internal/repository"
)

// ListingCache caches the public listing. A nil cache disables caching.
type ListingCache interface {
	GetPublicListing(ctx context.Context) ([]model.Session, bool)
	SetPublicListing(ctx context.Context, sessions []model.Session)
	InvalidatePublicListing(ctx context.Context)
}

type SessionService struct {
	sessionRepo repository.SessionRepository
	cache       ListingCache
}

func NewSessionService(sessionRepo repository.SessionRepository, cache ListingCache) *SessionService {
	return &SessionService{sessionRepo: sessionRepo, cache: cache}
}

// SaveSessionInput carries the client-supplied fields for draft and publish.
type SaveSessionInput struct {
	Title       string
	Description string
	Tags        model.TagList
	VideoURL    string
	Thumbnail   string
	Duration    string
}

// ListPublic returns all published sessions, newest first.
func (s *SessionService) ListPublic(ctx context.Context) ([]model.Session, error) {
	if s.cache != nil {
		if sessions, ok := s.cache.GetPublicListing(ctx); ok {
			return sessions, nil
		}
	}

	sessions, err := s.sessionRepo.FindPublished(ctx)
	if err != nil {
		return nil, apperr.StoreUnavailable(err)
	}
	if sessions == nil {
		sessions = []model.Session{}
	}

	if s.cache != nil {
		s.cache.SetPublicListing(ctx, sessions)
	}

	return sessions, nil
}

// ListMine returns every session owned by ownerID regardless of status,
// most recently updated first.
func (s *SessionService) ListMine(ctx context.Context, ownerID string) ([]model.Session, error) {
	sessions, err := s.sessionRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.StoreUnavailable(err)
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	return sessions, nil
}

// GetMine returns the owner's session. A session owned by someone else is
// indistinguishable from a missing one.
func (s *SessionService) GetMine(ctx context.Context, ownerID, id string) (*model.Session, error) {
	session, err := s.sessionRepo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, apperr.StoreUnavailable(err)
	}
	if session == nil {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

// SaveDraft creates or updates a session as a draft. Re-saving a published
// session through here reverts it to draft.
func (s *SessionService) SaveDraft(ctx context.Context, ownerID, id string, input SaveSessionInput) (*model.Session, error) {
	return s.save(ctx, ownerID, id, input, model.SessionStatusDraft)
}

// Publish creates or updates a session as published. Title, video URL and
// description must all be non-empty after trimming.
func (s *SessionService) Publish(ctx context.Context, ownerID, id string, input SaveSessionInput) (*model.Session, error) {
	return s.save(ctx, ownerID, id, input, model.SessionStatusPublished)
}

// save is the single validation-and-write path shared by draft and publish.
// The two differ only in which fields are mandatory and the stamped status.
func (s *SessionService) save(ctx context.Context, ownerID, id string, input SaveSessionInput, status model.SessionStatus) (*model.Session, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Validation("Title is required")
	}
	if utf8.RuneCountInString(title) > config.MaxTitleLength {
		return nil, apperr.Validation(fmt.Sprintf("Title must be at most %d characters", config.MaxTitleLength))
	}
	if utf8.RuneCountInString(input.Description) > config.MaxDescriptionLength {
		return nil, apperr.Validation(fmt.Sprintf("Description must be at most %d characters", config.MaxDescriptionLength))
	}

	description := input.Description
	videoURL := input.VideoURL
	if status == model.SessionStatusPublished {
		videoURL = strings.TrimSpace(videoURL)
		if videoURL == "" {
			return nil, apperr.Validation("Video URL is required for publishing")
		}
		description = strings.TrimSpace(description)
		if description == "" {
			return nil, apperr.Validation("Description is required for publishing")
		}
	}

	params := model.SaveSessionParams{
		Title:       title,
		Description: description,
		Tags:        model.NormalizeTags(input.Tags),
		VideoURL:    videoURL,
		Thumbnail:   input.Thumbnail,
		Duration:    input.Duration,
		Status:      status,
	}

	var (
		session *model.Session
		err     error
	)
	if id != "" {
		session, err = s.sessionRepo.Update(ctx, id, ownerID, params)
		if err != nil {
			return nil, apperr.StoreUnavailable(err)
		}
		if session == nil {
			return nil, apperr.NotFound("Session")
		}
	} else {
		session, err = s.sessionRepo.Create(ctx, ownerID, params)
		if err != nil {
			return nil, apperr.StoreUnavailable(err)
		}
	}

	if s.cache != nil {
		s.cache.InvalidatePublicListing(ctx)
	}

	log.Info().
		Str("sessionId", session.ID).
		Str("ownerId", ownerID).
		Str("status", string(status)).
		Msg("session saved")

	return session, nil
}

// Delete permanently removes the owner's session. No soft delete.
func (s *SessionService) Delete(ctx context.Context, ownerID, id string) error {
	deleted, err := s.sessionRepo.Delete(ctx, id, ownerID)
	if err != nil {
		return apperr.StoreUnavailable(err)
	}
	if !deleted {
		return apperr.NotFound("Session")
	}

	if s.cache != nil {
		s.cache.InvalidatePublicListing(ctx)
	}

	log.Info().Str("sessionId", id).Str("ownerId", ownerID).Msg("session deleted")

	return nil
}
