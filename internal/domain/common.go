package domain

import (
	"context"
	"strconv"
	"strings"

	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/geoutil"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func requestUserID(ctx context.Context) (string, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return "", errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return userID, nil
}

func normalizeLimit(ctx context.Context, limit int) (int, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if limit < 0 {
		return 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if limit > apiCfg.MaxLimit {
		return 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	return limit, nil
}

// parseFormLocation reads coordinates sent as form text. A missing value
// yields a nil point, which the lifecycle reports as LocationMissing.
func parseFormLocation(lat, lon string) (*geoutil.Point, error) {
	lat, lon = strings.TrimSpace(lat), strings.TrimSpace(lon)
	if lat == "" || lon == "" {
		return nil, nil
	}

	latValue, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid latitude %q", lat)
	}

	lonValue, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid longitude %q", lon)
	}

	return toLocation(&latValue, &lonValue)
}

func toLocation(lat, lon *float64) (*geoutil.Point, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}

	p := geoutil.Point{Lat: *lat, Lon: *lon}
	if !p.Valid() {
		return nil, errorx.New(errorx.BadRequest, "Coordinates are out of range")
	}

	return &p, nil
}
