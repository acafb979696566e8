package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/testutil"
)

func Test_parseFormLocation(t *testing.T) {
	p, err := parseFormLocation(" -6.2 ", "106.8")
	require.NoError(t, err)
	require.Equal(t, -6.2, p.Lat)
	require.Equal(t, 106.8, p.Lon)

	p, err = parseFormLocation("-6.2", "")
	require.NoError(t, err)
	require.Nil(t, p)

	_, err = parseFormLocation("north", "106.8")
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = parseFormLocation("91", "0")
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_normalizeLimit(t *testing.T) {
	ctx := testutil.MockContext()

	limit, err := normalizeLimit(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, limit)

	limit, err = normalizeLimit(ctx, 20)
	require.NoError(t, err)
	require.Equal(t, 20, limit)

	_, err = normalizeLimit(ctx, -1)
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = normalizeLimit(ctx, 51)
	require.True(t, errorx.Is(err, errorx.BadRequest))
}
