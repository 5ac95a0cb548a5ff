package auth

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/login_response.schema.json
var loginSchemaBytes []byte

var (
	loginSchema     *jsonschema.Schema
	loginSchemaOnce sync.Once
	loginSchemaErr  error
)

// getLoginSchema compiles the embedded schema once and returns it.
func getLoginSchema() (*jsonschema.Schema, error) {
	loginSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(loginSchemaBytes))
		if err != nil {
			loginSchemaErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("login_response.schema.json", doc); err != nil {
			loginSchemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		loginSchema, loginSchemaErr = c.Compile("login_response.schema.json")
		if loginSchemaErr != nil {
			loginSchemaErr = fmt.Errorf("compiling schema: %w", loginSchemaErr)
		}
	})
	return loginSchema, loginSchemaErr
}

// validateLoginResponse checks a raw response body against the schema.
func validateLoginResponse(data []byte) error {
	schema, err := getLoginSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	return nil
}
