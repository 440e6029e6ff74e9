package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aniview/aniview/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, development := range []bool{true, false} {
		logger, err := logging.New(development)
		require.NoError(t, err)
		require.NotNil(t, logger)
		logger.Info("logger constructed")
	}
}
