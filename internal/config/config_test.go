package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "primary_table", cfg.DynamoDBTable)
	assert.Equal(t, "GSI-1-SK", cfg.IndexName)
	assert.Equal(t, "ap-northeast-1", cfg.AWSRegion)
	assert.Equal(t, "https://api.vimeo.com", cfg.VimeoBaseURL)
	assert.True(t, cfg.IsDevelopment())
	assert.NotEmpty(t, cfg.ImageBaseURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TABLE_NAME", "staging_table")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VIMEO_EMBED_DOMAINS", "studio.example.com, admin.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "staging_table", cfg.DynamoDBTable)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"studio.example.com", "admin.example.com"}, cfg.VimeoEmbedDomains)
}

func TestValidateRequiresTokenInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("VIMEO_TOKEN", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateDerivesImageBaseURL(t *testing.T) {
	cfg := &Config{
		DynamoDBTable: "primary_table",
		IndexName:     "GSI-1-SK",
		ImageBucket:   "studio-banner-images",
		AWSRegion:     "ap-northeast-1",
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://studio-banner-images.s3.ap-northeast-1.amazonaws.com", cfg.ImageBaseURL)
}
