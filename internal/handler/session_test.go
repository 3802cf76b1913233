package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillpoint/wellness-server-go/internal/model"
	"github.com/stillpoint/wellness-server-go/internal/service"
)

func newSessionTestServer(t *testing.T, repo *memSessionRepo, user *model.User) http.Handler {
	t.Helper()
	svc := service.NewSessionService(repo, nil)
	h := NewSessionHandler(svc, authAs(user))
	return h.Routes()
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) model.Session {
	t.Helper()
	var body struct {
		Session model.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Session
}

func TestSaveDraftHandler(t *testing.T) {
	user := &model.User{ID: "user-a", Email: "a@x.com"}

	t.Run("creates a draft", func(t *testing.T) {
		router := newSessionTestServer(t, newMemSessionRepo(), user)

		req := httptest.NewRequest("POST", "/draft", strings.NewReader(`{"title":"Morning Flow"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		session := decodeSession(t, rec)
		assert.Equal(t, model.SessionStatusDraft, session.Status)
		assert.Equal(t, "Morning Flow", session.Title)
		assert.Equal(t, "user-a", session.OwnerID)
	})

	t.Run("normalizes comma-separated tags", func(t *testing.T) {
		router := newSessionTestServer(t, newMemSessionRepo(), user)

		body := `{"title":"M","tags":"yoga, Meditation ,  calm"}`
		req := httptest.NewRequest("POST", "/draft", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		session := decodeSession(t, rec)
		assert.Equal(t, model.TagList{"yoga", "meditation", "calm"}, session.Tags)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		router := newSessionTestServer(t, newMemSessionRepo(), user)

		req := httptest.NewRequest("POST", "/draft", strings.NewReader(`{"title":"  "}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		router := newSessionTestServer(t, newMemSessionRepo(), user)

		req := httptest.NewRequest("POST", "/draft", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("updating an unknown id returns 404", func(t *testing.T) {
		router := newSessionTestServer(t, newMemSessionRepo(), user)

		req := httptest.NewRequest("POST", "/draft", strings.NewReader(`{"id":"sess-nope","title":"T"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPublishHandler(t *testing.T) {
	user := &model.User{ID: "user-a", Email: "a@x.com"}

	t.Run("publishes a complete session", func(t *testing.T) {
		router := newSessionTestServer(t, newMemSessionRepo(), user)

		body := `{"title":"Calm","video_url":"https://example.com/v","description":"Relax"}`
		req := httptest.NewRequest("POST", "/publish", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		session := decodeSession(t, rec)
		assert.Equal(t, model.SessionStatusPublished, session.Status)
	})

	t.Run("rejects publish without video url and keeps the draft", func(t *testing.T) {
		repo := newMemSessionRepo()
		router := newSessionTestServer(t, repo, user)

		req := httptest.NewRequest("POST", "/draft", strings.NewReader(`{"title":"M"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		draft := decodeSession(t, rec)

		body := `{"id":"` + draft.ID + `","title":"M","description":"d"}`
		req = httptest.NewRequest("POST", "/publish", strings.NewReader(body))
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		stored := repo.sessions[draft.ID]
		require.NotNil(t, stored)
		assert.Equal(t, model.SessionStatusDraft, stored.Status)
		assert.Equal(t, "M", stored.Title)
	})
}

func TestListHandlers(t *testing.T) {
	userA := &model.User{ID: "user-a", Email: "a@x.com"}
	userB := &model.User{ID: "user-b", Email: "b@x.com"}

	repo := newMemSessionRepo()
	repo.ownerEmails["user-a"] = "a@x.com"
	repo.ownerEmails["user-b"] = "b@x.com"
	routerA := newSessionTestServer(t, repo, userA)
	routerB := newSessionTestServer(t, repo, userB)

	// A publishes one session and drafts another; B drafts one.
	for _, call := range []struct {
		router http.Handler
		path   string
		body   string
	}{
		{routerA, "/publish", `{"title":"Public A","video_url":"v","description":"d"}`},
		{routerA, "/draft", `{"title":"Draft A"}`},
		{routerB, "/draft", `{"title":"Draft B"}`},
	} {
		req := httptest.NewRequest("POST", call.path, strings.NewReader(call.body))
		rec := httptest.NewRecorder()
		call.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("public listing holds only published sessions", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/public", nil)
		rec := httptest.NewRecorder()
		routerB.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Sessions []model.Session `json:"sessions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Sessions, 1)
		assert.Equal(t, "Public A", body.Sessions[0].Title)
	})

	t.Run("listings carry the owner email for attribution", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/public", nil)
		rec := httptest.NewRecorder()
		routerB.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ownerEmail":"a@x.com"`)

		req = httptest.NewRequest("GET", "/my", nil)
		rec = httptest.NewRecorder()
		routerB.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Sessions []model.Session `json:"sessions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Sessions, 1)
		assert.Equal(t, "b@x.com", body.Sessions[0].OwnerEmail)
	})

	t.Run("my listing includes drafts and only own sessions", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/my", nil)
		rec := httptest.NewRecorder()
		routerA.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Sessions []model.Session `json:"sessions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Sessions, 2)
		for _, s := range body.Sessions {
			assert.Equal(t, "user-a", s.OwnerID)
		}
	})

	t.Run("empty listings serialize as arrays", func(t *testing.T) {
		router := newSessionTestServer(t, newMemSessionRepo(), userA)

		req := httptest.NewRequest("GET", "/public", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"sessions":[]}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "null")

		req = httptest.NewRequest("GET", "/my", nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"sessions":[]}`, rec.Body.String())
	})

	t.Run("another owner's session is a 404", func(t *testing.T) {
		var draftAID string
		for id, s := range repo.sessions {
			if s.Title == "Draft A" {
				draftAID = id
			}
		}
		require.NotEmpty(t, draftAID)

		req := httptest.NewRequest("GET", "/my/"+draftAID, nil)
		rec := httptest.NewRecorder()
		routerB.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteHandler(t *testing.T) {
	user := &model.User{ID: "user-a", Email: "a@x.com"}

	t.Run("deletes an owned session", func(t *testing.T) {
		repo := newMemSessionRepo()
		router := newSessionTestServer(t, repo, user)

		req := httptest.NewRequest("POST", "/draft", strings.NewReader(`{"title":"T"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		session := decodeSession(t, rec)

		req = httptest.NewRequest("DELETE", "/"+session.ID, nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		assert.Empty(t, repo.sessions)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		router := newSessionTestServer(t, newMemSessionRepo(), user)

		req := httptest.NewRequest("DELETE", "/sess-nope", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
