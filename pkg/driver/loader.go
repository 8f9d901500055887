package driver

import (
	"fmt"
	"os"

	"xslang/interpreter-go/pkg/ast"
)

// LoadProgram reads an ESTree JSON document describing one program.
func LoadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	program, err := ast.DecodeProgram(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return program, nil
}
