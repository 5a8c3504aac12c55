package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestSpannerTarget_Paths(t *testing.T) {
	target := spannerTarget{project: "p", instance: "i", database: "d"}
	assert.Equal(t, "projects/p", target.projectPath())
	assert.Equal(t, "projects/p/instances/i", target.instancePath())
	assert.Equal(t, "projects/p/instances/i/databases/d", target.databasePath())
}

func TestEnsure(t *testing.T) {
	notFound := status.Error(codes.NotFound, "missing")

	t.Run("existing resource is not created", func(t *testing.T) {
		created := false
		err := ensure("db", false, func() error { return nil }, func() error { created = true; return nil })
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("missing resource is created", func(t *testing.T) {
		created := false
		err := ensure("db", false, func() error { return notFound }, func() error { created = true; return nil })
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("concurrent creation is fine", func(t *testing.T) {
		err := ensure("db", false,
			func() error { return notFound },
			func() error { return status.Error(codes.AlreadyExists, "exists") })
		assert.NoError(t, err)
	})

	t.Run("create failure is reported", func(t *testing.T) {
		boom := errors.New("boom")
		err := ensure("db", false, func() error { return notFound }, func() error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("lookup failure only tolerated on the emulator", func(t *testing.T) {
		unavailable := status.Error(codes.Unavailable, "down")
		noCreate := func() error { t.Fatal("create must not run"); return nil }

		assert.Error(t, ensure("db", false, func() error { return unavailable }, noCreate))
		assert.NoError(t, ensure("db", true, func() error { return unavailable }, noCreate))
	})
}
