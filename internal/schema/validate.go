// Package schema provides JSON schema validation for celconf configuration
// and fixture suite files.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/celconf/celconf/schema"
)

var (
	configSchema  *jsonschema.Schema
	fixtureSchema *jsonschema.Schema
	compileOnce   sync.Once
	compileErr    error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		configData, err := schemafs.FS.ReadFile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read config schema: %w", err)
			return
		}

		fixtureData, err := schemafs.FS.ReadFile("fixture.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read fixture schema: %w", err)
			return
		}

		configDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(configData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal config schema: %w", err)
			return
		}

		fixtureDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(fixtureData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal fixture schema: %w", err)
			return
		}

		if err := compiler.AddResource("config.schema.json", configDoc); err != nil {
			compileErr = fmt.Errorf("add config schema resource: %w", err)
			return
		}

		if err := compiler.AddResource("fixture.schema.json", fixtureDoc); err != nil {
			compileErr = fmt.Errorf("add fixture schema resource: %w", err)
			return
		}

		configSchema, err = compiler.Compile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
			return
		}

		fixtureSchema, err = compiler.Compile("fixture.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile fixture schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateConfig validates JSON data against the config schema.
func ValidateConfig(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := configSchema.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// ValidateSuite validates a decoded fixture suite document against the
// fixture schema. The document is round-tripped through JSON so that
// YAML-decoded values carry the types the validator expects.
func ValidateSuite(doc any) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode suite document: %w", err)
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode suite document: %w", err)
	}

	if err := fixtureSchema.Validate(v); err != nil {
		return fmt.Errorf("suite validation failed: %w", err)
	}

	return nil
}
