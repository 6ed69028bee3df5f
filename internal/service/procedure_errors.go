package service

import (
	"context"
	"errors"

	"github.com/lib/pq"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"

	"github.com/noah-isme/bizops-api/internal/models"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
)

// SQLSTATE values raised by the archive procedures.
const (
	sqlStateNoDataFound        pq.ErrorCode = "P0002"
	sqlStateInsufficientPrivil pq.ErrorCode = "42501"
	sqlClassIntegrity          pq.ErrorClass = "23"
)

// procedureError maps a storage failure to an API error while keeping the original as cause.
func procedureError(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, models.ErrUnknownEntityKind),
		errors.Is(err, models.ErrUnknownFilterMode),
		errors.Is(err, models.ErrUnknownBaseTable):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "storage call interrupted")
	}

	// both transports carry the SQLSTATE raised inside the procedure
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if mapped := bySQLState(err, pqErr.Code, pqErr.Message); mapped != nil {
			return mapped
		}
	}
	var restErr *postgrest.RequestError
	if errors.As(err, &restErr) {
		if mapped := bySQLState(err, pq.ErrorCode(restErr.Code), restErr.Message); mapped != nil {
			return mapped
		}
	}
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, message)
}

func bySQLState(err error, code pq.ErrorCode, message string) error {
	switch {
	case code == sqlStateNoDataFound:
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, message)
	case code == sqlStateInsufficientPrivil:
		return appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, message)
	case len(code) == 5 && code.Class() == sqlClassIntegrity:
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, message)
	}
	return nil
}
