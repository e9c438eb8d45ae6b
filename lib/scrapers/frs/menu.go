package frs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"frsmenu/lib/restyutil"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const reservationPath = "/api/v0/Reservation"

// WeekQuery builds the query of the reservation API. The current week is
// requested with an empty lastdate, other weeks are addressed relative to
// the Saturday of the current week in days.
func WeekQuery(baseSaturday string, offset int) url.Values {
	if offset == 0 {
		return url.Values{
			"lastdate":   {""},
			"navigation": {"0"},
		}
	}
	return url.Values{
		"lastdate":   {baseSaturday},
		"navigation": {strconv.Itoa(offset * 7)},
	}
}

// WeekMenu fetches the menu of the week `offset` weeks away from the week
// starting on `baseSaturday` (Jalali, "YYYY/MM/DD").
func (c *Client) WeekMenu(ctx context.Context, baseSaturday string, offset int) ([]Day, error) {
	ctx, span := tracer.Start(ctx, "client:WeekMenu")
	defer span.End()

	span.SetAttributes(
		attribute.String("frs.base_saturday", baseSaturday),
		attribute.Int("frs.offset", offset),
	)

	res, err := c.Http.R().
		SetContext(restyutil.WithStep(ctx, "menu")).
		SetHeader("Accept", "application/json").
		SetQueryParamsFromValues(WeekQuery(baseSaturday, offset)).
		Get(reservationPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch menu")
		return nil, fmt.Errorf("fetch menu: %w", err)
	}

	switch {
	case res.StatusCode() == http.StatusUnauthorized || res.StatusCode() == http.StatusForbidden:
		span.SetStatus(codes.Error, ErrNotAuthenticated.Error())
		return nil, ErrNotAuthenticated
	case res.IsError():
		span.SetStatus(codes.Error, "menu api returned an error status")
		return nil, fmt.Errorf("fetch menu: %s", res.Status())
	}

	body := bytes.TrimSpace(res.Body())
	if bytes.HasPrefix(body, []byte("<")) {
		// redirected to the login page
		span.SetStatus(codes.Error, ErrNotAuthenticated.Error())
		return nil, ErrNotAuthenticated
	}

	var days []Day
	err = json.Unmarshal(body, &days)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode menu")
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	span.SetAttributes(attribute.Int("frs.days", len(days)))
	return days, nil
}
