package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	jsreflect "github.com/invopop/jsonschema"
	jsvalidate "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "suite.schema.json"

var (
	schemaOnce sync.Once
	schemaData []byte
	schemaErr  error
)

// Schema returns the JSON schema of the suite file, reflected from Suite.
func Schema() ([]byte, error) {
	schemaOnce.Do(func() {
		r := &jsreflect.Reflector{RequiredFromJSONSchemaTags: true, Anonymous: true}
		sch := r.Reflect(&Suite{})
		sch.Title = "authcheck suite"
		sch.Description = "application facts used by authcheck scenarios"
		schemaData, schemaErr = json.MarshalIndent(sch, "", "  ")
	})
	if schemaErr != nil {
		return nil, fmt.Errorf("failed to build suite schema: %w", schemaErr)
	}
	return schemaData, nil
}

// NewValidator compiles the suite schema and returns a validator for decoded documents.
func NewValidator() (Validator, error) {
	data, err := Schema()
	if err != nil {
		return nil, err
	}

	compiler := jsvalidate.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add suite schema: %w", err)
	}
	sch, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile suite schema: %w", err)
	}

	return func(doc any) error {
		// round-trip through json, the validator expects json-decoded values
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode suite for validation: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode suite for validation: %w", err)
		}
		if err := sch.Validate(v); err != nil {
			return fmt.Errorf("suite validation failed: %w", err)
		}
		return nil
	}, nil
}
