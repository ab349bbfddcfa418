package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainerResolvesFrontends(t *testing.T) {
	t.Setenv("EMAIL_CLASSIFIER_LOGGING_LEVEL", "error")

	container, err := BuildContainer()
	require.NoError(t, err)

	err = container.Invoke(func(frontends []ports.Frontend, service *core.ClassificationService) {
		require.NotEmpty(t, frontends)
		assert.Equal(t, 12, service.DomainCount())
	})
	require.NoError(t, err)
}

func TestBuildCLIContainerDefaults(t *testing.T) {
	container, err := BuildCLIContainer(&CLIFlags{Workers: 3})
	require.NoError(t, err)

	err = container.Invoke(func(service *core.ClassificationService) {
		result, err := service.Verify(context.Background(), "test@tempmail.com")
		require.NoError(t, err)
		assert.Equal(t, 30, result.Score)
	})
	require.NoError(t, err)
}

func TestBuildCLIContainerConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("disposable:\n  domains:\n    - Burner.io\n"), 0o600))

	container, err := BuildCLIContainer(&CLIFlags{ConfigFile: path})
	require.NoError(t, err)

	err = container.Invoke(func(service *core.ClassificationService) {
		assert.Equal(t, []string{"burner.io"}, service.Domains())

		result, err := service.Verify(context.Background(), "x@tempmail.com")
		require.NoError(t, err)
		assert.False(t, result.Disposable)
	})
	require.NoError(t, err)
}

func TestBuildCLIContainerMissingConfigFile(t *testing.T) {
	container, err := BuildCLIContainer(&CLIFlags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)

	err = container.Invoke(func(*core.ClassificationService) {})
	assert.Error(t, err)
}
