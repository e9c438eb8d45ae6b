package osutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/student")

	path, err := ExpandHome("~/frs/cookies.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/home/student", "frs", "cookies.txt"), path)

	path, err = ExpandHome("~")
	require.NoError(t, err)
	require.Equal(t, "/home/student", path)

	path, err = ExpandHome("cookies.txt")
	require.NoError(t, err)
	require.Equal(t, "cookies.txt", path)

	path, err = ExpandHome("/tmp/~/x")
	require.NoError(t, err)
	require.Equal(t, "/tmp/~/x", path)
}

func TestSignalContextCancel(t *testing.T) {
	ctx, cancel := SignalContext(context.Background())
	require.NoError(t, ctx.Err())
	cancel()
	<-ctx.Done()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}
