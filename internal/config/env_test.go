package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Run("no env file", func(t *testing.T) {
		loaded, err := LoadEnv()
		assert.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("loads .env without overriding process env", func(t *testing.T) {
		t.Setenv("M2T_LANGUAGE", "en-US")
		content := "M2T_LANGUAGE=de-DE\nM2T_TEST_ONLY_VALUE=from-file\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644))
		t.Cleanup(func() { os.Unsetenv("M2T_TEST_ONLY_VALUE") })

		loaded, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, ".env", loaded)
		assert.Equal(t, "en-US", os.Getenv("M2T_LANGUAGE"))
		assert.Equal(t, "from-file", os.Getenv("M2T_TEST_ONLY_VALUE"))
	})
}

func TestEnvExampleListsEngineKeys(t *testing.T) {
	vars, err := godotenv.Read(filepath.Join("..", "..", ".env.example"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEngine, vars["M2T_ENGINE"])
	for _, engine := range []string{EngineGoogle, EngineOpenAI, EngineGemini} {
		assert.Contains(t, vars, APIKeyEnv(engine), engine)
	}
}
