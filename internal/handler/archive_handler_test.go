package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bizops-api/internal/middleware"
	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/service"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type fakeArchiveSrv struct {
	actor  service.Actor
	cmd    service.ArchiveCommand
	action string
	err    error
}

func (f *fakeArchiveSrv) Archive(_ context.Context, actor service.Actor, cmd service.ArchiveCommand) (*service.ArchiveResult, error) {
	f.actor, f.cmd, f.action = actor, cmd, "archive"
	if f.err != nil {
		return nil, f.err
	}
	return &service.ArchiveResult{Kind: models.EntityKind(cmd.Kind), ID: cmd.ID, Archived: true, Reason: cmd.Reason}, nil
}

func (f *fakeArchiveSrv) Unarchive(_ context.Context, actor service.Actor, cmd service.ArchiveCommand) (*service.ArchiveResult, error) {
	f.actor, f.cmd, f.action = actor, cmd, "unarchive"
	if f.err != nil {
		return nil, f.err
	}
	return &service.ArchiveResult{Kind: models.EntityKind(cmd.Kind), ID: cmd.ID}, nil
}

func newArchiveContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Params = gin.Params{{Key: "kind", Value: "order"}, {Key: "id", Value: "o-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin})
	return c, rec
}

func TestArchiveHandlerArchiveWithReason(t *testing.T) {
	srv := &fakeArchiveSrv{}
	handler := NewArchiveHandler(srv)
	c, rec := newArchiveContext(http.MethodPost, "/archives/order/o-1", `{"reason":"duplicate"}`)

	handler.Archive(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "archive", srv.action)
	assert.Equal(t, "order", srv.cmd.Kind)
	assert.Equal(t, "o-1", srv.cmd.ID)
	require.NotNil(t, srv.cmd.Reason)
	assert.Equal(t, "duplicate", *srv.cmd.Reason)
	assert.Equal(t, "u1", srv.actor.UserID)

	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"kind":"order","id":"o-1","archived":true,"reason":"duplicate"}`, string(env.Data))
}

func TestArchiveHandlerArchiveWithoutBody(t *testing.T) {
	srv := &fakeArchiveSrv{}
	c, rec := newArchiveContext(http.MethodPost, "/archives/order/o-1", "")

	NewArchiveHandler(srv).Archive(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, srv.cmd.Reason)
}

func TestArchiveHandlerRejectsMalformedBody(t *testing.T) {
	srv := &fakeArchiveSrv{}
	c, rec := newArchiveContext(http.MethodPost, "/archives/order/o-1", `{"reason":`)

	NewArchiveHandler(srv).Archive(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, srv.action)
}

func TestArchiveHandlerUnarchivePropagatesError(t *testing.T) {
	srv := &fakeArchiveSrv{err: appErrors.Clone(appErrors.ErrNotFound, "order not found")}
	c, rec := newArchiveContext(http.MethodDelete, "/archives/order/o-1", "")

	NewArchiveHandler(srv).Unarchive(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unarchive", srv.action)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
