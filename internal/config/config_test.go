package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/chessclub/internal/factory"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func signedKey(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":  "supabase",
		"role": role,
	})
	key, err := token.SignedString([]byte("not-the-real-secret"))
	require.NoError(t, err)
	return key
}

func TestFromEnv_SupabaseDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		EnvSupabaseURL:     "https://club.supabase.co/",
		EnvSupabaseAnonKey: signedKey(t, "anon"),
	}))
	require.NoError(t, err)

	assert.Equal(t, factory.StoreTypeSupabase, cfg.StoreType)
	assert.Equal(t, "https://club.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "anon", cfg.KeyRole)
	assert.False(t, cfg.IsServiceRoleKey())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)

	fc := cfg.Factory(nil)
	require.NotNil(t, fc.Supabase)
	assert.Equal(t, "https://club.supabase.co", fc.Supabase.URL)
	assert.Nil(t, fc.Redis)
}

func TestFromEnv_MissingSupabaseSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"nothing set", map[string]string{}},
		{"url only", map[string]string{EnvSupabaseURL: "https://club.supabase.co"}},
		{"key only", map[string]string{EnvSupabaseAnonKey: "sb_publishable_abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envMap(tt.env))
			assert.ErrorContains(t, err, "SUPABASE_URL and SUPABASE_ANON_KEY must be set")
		})
	}
}

func TestFromEnv_MalformedKey(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{
		EnvSupabaseURL:     "https://club.supabase.co",
		EnvSupabaseAnonKey: "definitely-not-a-jwt",
	}))
	assert.ErrorContains(t, err, "invalid SUPABASE_ANON_KEY")
}

func TestFromEnv_ServiceRoleKey(t *testing.T) {
	for _, key := range []string{signedKey(t, "service_role"), "sb_secret_abc123"} {
		cfg, err := FromEnv(envMap(map[string]string{
			EnvSupabaseURL:     "https://club.supabase.co",
			EnvSupabaseAnonKey: key,
		}))
		require.NoError(t, err)
		assert.True(t, cfg.IsServiceRoleKey())
	}
}

func TestFromEnv_OtherStores(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{EnvStoreType: "postgres"}))
	assert.ErrorContains(t, err, "DATABASE_URL must be set")

	_, err = FromEnv(envMap(map[string]string{EnvStoreType: "redis"}))
	assert.ErrorContains(t, err, "REDIS_URL must be set")

	_, err = FromEnv(envMap(map[string]string{EnvStoreType: "mongo"}))
	assert.ErrorContains(t, err, `unknown STORE_TYPE "mongo"`)

	cfg, err := FromEnv(envMap(map[string]string{EnvStoreType: "REDIS", EnvRedisURL: "redis://localhost:6379/1"}))
	require.NoError(t, err)
	fc := cfg.Factory(nil)
	require.NotNil(t, fc.Redis)
	assert.Equal(t, "redis://localhost:6379/1", fc.Redis.URL)
	assert.Equal(t, "chessclub", fc.Redis.KeyPrefix)

	cfg, err = FromEnv(envMap(map[string]string{EnvStoreType: "memory"}))
	require.NoError(t, err)
	assert.Equal(t, factory.StoreTypeMemory, cfg.Factory(nil).StoreType)
}

func TestFromEnv_ServerSettings(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		EnvStoreType:   "memory",
		EnvPort:        "3000",
		EnvCORSOrigins: "http://localhost:5173, https://club.example.com,",
		EnvLogLevel:    "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://club.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	_, err = FromEnv(envMap(map[string]string{EnvStoreType: "memory", EnvPort: "http"}))
	assert.ErrorContains(t, err, "invalid PORT")

	_, err = FromEnv(envMap(map[string]string{EnvStoreType: "memory", EnvPort: "70000"}))
	assert.ErrorContains(t, err, "PORT must be between 1 and 65535")

	_, err = FromEnv(envMap(map[string]string{EnvStoreType: "memory", EnvLogLevel: "chatty"}))
	assert.ErrorContains(t, err, "invalid LOG_LEVEL")
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STORE_TYPE=memory\nPORT=9090\n"), 0o600))

	// godotenv never overrides variables that are already set
	for _, k := range []string{EnvStoreType, EnvPort} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, factory.StoreTypeMemory, cfg.StoreType)
	assert.Equal(t, 9090, cfg.Port)
}
