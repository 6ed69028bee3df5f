package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/bizops-api/internal/service"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
)

type fakeExportSrv struct {
	req service.ExportRequest
	err error
}

func (f *fakeExportSrv) Export(_ context.Context, req service.ExportRequest) (*service.ExportResult, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &service.ExportResult{Filename: "orders-archived.csv", ContentType: "text/csv", Body: []byte("id\no-1\n"), Rows: 1}, nil
}

func TestExportHandlerStreamsAttachment(t *testing.T) {
	srv := &fakeExportSrv{}
	c, rec := newGetContext("/exports/orders?filter=archived&format=csv")
	c.Params = gin.Params{{Key: "table", Value: "orders"}}

	NewExportHandler(srv).Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportRequest{Table: "orders", Filter: "archived", Format: "csv"}, srv.req)
	assert.Equal(t, `attachment; filename="orders-archived.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "id\no-1\n", rec.Body.String())
}

func TestExportHandlerValidationError(t *testing.T) {
	c, rec := newGetContext("/exports/orders?format=xlsx")
	c.Params = gin.Params{{Key: "table", Value: "orders"}}

	NewExportHandler(&fakeExportSrv{err: appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")}).Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
