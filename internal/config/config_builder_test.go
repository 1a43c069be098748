package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEncryptionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func testBuilder(args ...string) *configBuilder {
	b := newConfigBuilder()
	b.args = args
	return b
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := testBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := testBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that mergo only fills zero fields, so
// the first source to set a value keeps it.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "env"}},
		&StructuredConfig{App: App{Version: "json", TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

func TestBuild_RunsValidation(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{AI: AI{SummaryProvider: "claude"}})

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAIConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("APP_ENCRYPTION_KEY", testEncryptionKey)
	t.Setenv("AI_SUMMARY_PROVIDER", "gemini")
	t.Setenv("AI_GEMINI_API_KEY", "g-key")
	t.Setenv("VOICE_CONNECT_TIMEOUT", "15s")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost/brainstorm")

	b := testBuilder().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	got := b.configs[0]
	assert.Equal(t, "env-version", got.App.Version)
	assert.Equal(t, testEncryptionKey, got.App.EncryptionKey)
	assert.Equal(t, "gemini", got.AI.SummaryProvider)
	assert.Equal(t, "g-key", got.AI.GeminiKey)
	assert.Equal(t, 15*time.Second, got.Voice.ConnectTimeout)
	assert.Equal(t, "postgres://u:p@localhost/brainstorm", got.Storage.DB.DSN)
}

func TestWithEnv_BadDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "forever")

	b := testBuilder().withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ParsesArgs(t *testing.T) {
	b := testBuilder(
		"-a", "localhost:8080",
		"-d", "postgres://localhost/db",
		"-config", "/etc/brainstorm.json",
		"-token-duration", "2h",
		"-encryption-key", testEncryptionKey,
		"-connect-timeout", "5s",
		"-server", "http://localhost:8080",
	).withFlags()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	got := b.configs[0]
	assert.Equal(t, "localhost:8080", got.Server.HTTPAddress)
	assert.Equal(t, "postgres://localhost/db", got.Storage.DB.DSN)
	assert.Equal(t, "/etc/brainstorm.json", got.JSONFilePath)
	assert.Equal(t, 2*time.Hour, got.App.TokenDuration)
	assert.Equal(t, testEncryptionKey, got.App.EncryptionKey)
	assert.Equal(t, 5*time.Second, got.Voice.ConnectTimeout)
	assert.Equal(t, "http://localhost:8080", got.Adapter.HTTPAddress)
}

func TestWithFlags_UnknownFlag(t *testing.T) {
	b := testBuilder("-nope").withFlags()
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.AI.ChatModel = "gpt-4o-mini"
	payload.Voice.ConnectTimeout = Duration(12 * time.Second)
	path := writeTempJSONConfig(t, payload)

	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "gpt-4o-mini", b.configs[1].AI.ChatModel)
	assert.Equal(t, 12*time.Second, b.configs[1].Voice.ConnectTimeout)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_MalformedFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestBuilder_FullChain(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "from-json"
	payload.App.TokenIssuer = "from-json"
	path := writeTempJSONConfig(t, payload)
	t.Setenv("APP_TOKEN_ISSUER", "from-env")

	cfg, err := testBuilder("-c", path).withEnv().withFlags().withJSON().build()

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.App.TokenIssuer)
	assert.Equal(t, "from-json", cfg.App.Version)
	assert.Equal(t, path, cfg.JSONFilePath)
}
