package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return strings.TrimSpace(out.String()), err
}

func TestModeWithoutRedis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")

	out, err := execute(t, "mode", "get")
	require.NoError(t, err)
	assert.Equal(t, "mock", out)

	_, err = execute(t, "mode", "set", "staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown data mode")
}

func TestModeSetPersistsInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("REDIS_PREFIX", "portal:")

	out, err := execute(t, "mode", "set", "real")
	require.NoError(t, err)
	assert.Equal(t, "real", out)

	stored, err := mr.Get("portal:dataMode")
	require.NoError(t, err)
	assert.Equal(t, "real", stored)

	out, err = execute(t, "mode", "get")
	require.NoError(t, err)
	assert.Equal(t, "real", out)
}

func TestProbeUnconfiguredStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "rdsdata")
	t.Setenv("AURORA_RESOURCE_ARN", "")
	t.Setenv("AURORA_SECRET_ARN", "")

	_, err := execute(t, "probe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe rdsdata store")
}
