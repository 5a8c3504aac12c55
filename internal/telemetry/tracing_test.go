package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/config"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	for _, cfg := range []config.OTelConfig{
		{},
		{Endpoint: "http://localhost:4318", Enabled: false},
	} {
		shutdown, err := Setup(context.Background(), cfg, "collecte-test")
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	}
}

func TestTracer_StartsSpans(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "test")
	defer span.End()
	assert.NotNil(t, span)
}
