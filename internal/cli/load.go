package cli

import (
	"fmt"

	"github.com/cpkit/cpkit/internal/contentpack"
	"github.com/cpkit/cpkit/internal/platform"
	"github.com/cpkit/cpkit/internal/validation"
)

// loadPackage reads a package either from a document directory (when dir is
// set) or from a YAML source file, and validates it. Schema issues found in
// a document directory come first in the result.
func loadPackage(source, dir string) (*contentpack.Package, *validation.Result, error) {
	if dir != "" {
		logger.Debug("loading documents", "dir", dir)
		p, schemaResult, err := contentpack.LoadDir(dir, platform.OS{})
		if err != nil {
			return nil, nil, fmt.Errorf("loading package from %s: %w", dir, err)
		}
		result := validation.NewResult()
		result.Append(schemaResult)
		result.Append(contentpack.Validate(p))
		return p, result, nil
	}

	if source == "" {
		source = contentpack.SourceFileName
	}
	logger.Debug("loading source", "file", source)
	p, err := contentpack.LoadSource(source)
	if err != nil {
		return nil, nil, err
	}
	return p, contentpack.Validate(p), nil
}

// sourceArg returns the optional source path argument.
func sourceArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
