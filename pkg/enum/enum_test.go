package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	type Status string

	open := New(Status("OPEN"))
	closed := New(Status("CLOSED"))
	require.Equal(t, Status("OPEN"), open)

	v, err := ToEnum[Status]("CLOSED")
	require.NoError(t, err)
	require.Equal(t, closed, v)

	_, err = ToEnum[Status]("closed")
	require.Error(t, err)

	require.Equal(t, []Status{open, closed}, Values[Status]())
}

func TestToEnum_UnknownType(t *testing.T) {
	type Unregistered string

	_, err := ToEnum[Unregistered]("x")
	require.Error(t, err)
	require.Empty(t, Values[Unregistered]())
}
