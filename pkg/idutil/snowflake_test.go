package idutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextSnowflake_Increasing(t *testing.T) {
	require.NoError(t, SetNode(7))

	prev := NextSnowflake()
	for i := 0; i < 1000; i++ {
		id := NextSnowflake()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestSetNode_OutOfRange(t *testing.T) {
	require.Error(t, SetNode(1<<20))
}
