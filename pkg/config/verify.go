package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := checkKnownSections(&schema, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// checkKnownSections verifies every config section is described by the schema
func checkKnownSections(schema *jsonschema.Schema, configMap map[string]any) error {
	root := schema
	if schema.Ref != "" && schema.Definitions != nil {
		if def, ok := schema.Definitions["Config"]; ok {
			root = def
		}
	}
	if root.Properties == nil {
		return fmt.Errorf("schema has no properties")
	}
	for key := range configMap {
		if _, ok := root.Properties.Get(key); !ok {
			return fmt.Errorf("section %q is not in schema", key)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	if cfg.Feed.Path == "" {
		return fmt.Errorf("feed.path is required")
	}
	if cfg.Feed.MaxPosts == 0 {
		return fmt.Errorf("feed.max_posts is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
