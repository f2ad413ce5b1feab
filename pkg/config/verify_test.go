package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.SetDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "missing listen", modify: func(c *Config) { c.Server.Listen = "" }, wantErr: true, errMsg: "server.listen is required"},
		{name: "missing timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, wantErr: true, errMsg: "server.timeout is required"},
		{name: "missing base url", modify: func(c *Config) { c.Server.BaseURL = "" }, wantErr: true, errMsg: "server.base_url is required"},
		{name: "missing feed path", modify: func(c *Config) { c.Feed.Path = "" }, wantErr: true, errMsg: "feed.path is required"},
		{name: "missing max posts", modify: func(c *Config) { c.Feed.MaxPosts = 0 }, wantErr: true, errMsg: "feed.max_posts is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_posts")
	assert.Contains(t, string(data), "admin_email")
	assert.Contains(t, string(data), "base_url")
}

func TestEmbeddedSchemaSections(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	defs, ok := schema["$defs"].(map[string]any)
	require.True(t, ok)
	cfgDef, ok := defs["Config"].(map[string]any)
	require.True(t, ok)
	props, ok := cfgDef["properties"].(map[string]any)
	require.True(t, ok)
	for _, section := range []string{"server", "database", "feed", "site", "sync"} {
		assert.Contains(t, props, section)
	}
}
