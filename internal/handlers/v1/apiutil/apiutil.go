// Package apiutil holds the request parsing and error mapping shared by the
// v1 handlers.
package apiutil

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// ServiceError turns an error from the service layer into the huma error the
// caller sees. msg is the summary shown for failures that are not the
// caller's fault.
func ServiceError(err error, msg string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return huma.NewError(http.StatusNotFound, "not found", err)
	case ledger.IsValidation(err):
		return huma.NewError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, storage.ErrConflict):
		return huma.NewError(http.StatusConflict, "conflicting change", err)
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}

func ParseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

// ParseOptionalUUID returns nil for an empty value.
func ParseOptionalUUID(raw, field string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := ParseUUID(raw, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseDate reads a YYYY-MM-DD value. An empty value gives the zero time.
func ParseDate(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return t, nil
}

func ParseDecimal(raw, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func FormatOptionalUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
