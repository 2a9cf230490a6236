package contentpack

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cpkit/cpkit/internal/validation"
)

//go:embed schema/manifest.schema.json
var manifestSchemaBytes []byte

//go:embed schema/content.schema.json
var contentSchemaBytes []byte

const (
	manifestSchemaURL = "manifest.schema.json"
	contentSchemaURL  = "content.schema.json"
)

var (
	compiledManifest *jsonschema.Schema
	compiledContent  *jsonschema.Schema
	compileOnce      sync.Once
	compileErr       error
	printer          = message.NewPrinter(language.English)
)

// getSchemas compiles the embedded document schemas once.
func getSchemas() (manifest, content *jsonschema.Schema, err error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for url, raw := range map[string][]byte{
			manifestSchemaURL: manifestSchemaBytes,
			contentSchemaURL:  contentSchemaBytes,
		} {
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", url, err)
				return
			}
			if err := c.AddResource(url, doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", url, err)
				return
			}
		}
		if compiledManifest, compileErr = c.Compile(manifestSchemaURL); compileErr != nil {
			compileErr = fmt.Errorf("compiling %s: %w", manifestSchemaURL, compileErr)
			return
		}
		if compiledContent, compileErr = c.Compile(contentSchemaURL); compileErr != nil {
			compileErr = fmt.Errorf("compiling %s: %w", contentSchemaURL, compileErr)
		}
	})
	return compiledManifest, compiledContent, compileErr
}

// ParseDocuments builds a package from manifest.json and content.json bytes.
// Malformed JSON is returned as an error. Values of the wrong JSON type are
// reported in the returned result and left at their zero value in the
// package, so the caller can still run Validate on it.
func ParseDocuments(manifestJSON, contentJSON []byte) (*Package, *validation.Result, error) {
	manifestDocSchema, contentDocSchema, err := getSchemas()
	if err != nil {
		return nil, nil, fmt.Errorf("loading schema: %w", err)
	}

	result := validation.NewResult()
	if err := checkSchema(manifestDocSchema, manifestJSON, ManifestPath, result); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", ManifestFileName, err)
	}
	if err := checkSchema(contentDocSchema, contentJSON, "", result); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", ContentFileName, err)
	}

	var mdoc manifestDoc
	if err := decodeLenient(manifestJSON, &mdoc); err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", ManifestFileName, err)
	}
	var cdoc contentDoc
	if err := decodeLenient(contentJSON, &cdoc); err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", ContentFileName, err)
	}

	p := &Package{
		Manifest: Manifest{
			Name:              mdoc.Name,
			Author:            mdoc.Author,
			Version:           mdoc.Version,
			Description:       mdoc.Description,
			UniqueID:          mdoc.UniqueID,
			MinimumAPIVersion: mdoc.MinimumAPIVersion,
			UpdateKeys:        mdoc.UpdateKeys,
			ContentPackFor: ContentPackFor{
				UniqueID:       mdoc.ContentPackFor.UniqueID,
				MinimumVersion: mdoc.ContentPackFor.MinimumVersion,
			},
		},
		Changes: cdoc.Changes,
	}
	return p, result, nil
}

// UnmarshalJSON reads Action, Target, and When by name and keeps every other
// key in Fields. An exact-case key wins over a case-insensitive match, and
// among case variants the lexically first one is used. Numbers stay
// json.Number so they render back unchanged. Non-object input leaves p empty;
// the schema check reports it.
func (p *Patch) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		*p = Patch{}
		return nil
	}

	out := Patch{}
	if v, ok := lookupMember(obj, "Action"); ok {
		out.Action, _ = v.(string)
	}
	if v, ok := lookupMember(obj, "Target"); ok {
		out.Target, _ = v.(string)
	}
	if v, ok := lookupMember(obj, "When"); ok {
		out.When = decodeWhen(v)
	}
	for key, value := range obj {
		if isReservedKey(key) || value == nil {
			continue
		}
		out.Set(key, value)
	}
	*p = out
	return nil
}

// lookupMember finds name in obj, preferring the exact key over case variants.
func lookupMember(obj map[string]any, name string) (any, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for _, key := range sortedKeys(obj) {
		if strings.EqualFold(key, name) {
			return obj[key], true
		}
	}
	return nil, false
}

func decodeWhen(v any) map[string]string {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	when := make(map[string]string, len(obj))
	for k, val := range obj {
		switch c := val.(type) {
		case string:
			when[k] = c
		case json.Number:
			when[k] = c.String()
		case bool:
			when[k] = strconv.FormatBool(c)
		}
	}
	return when
}

// decodeLenient unmarshals data into v and ignores JSON type mismatches,
// which the schema check has already reported.
func decodeLenient(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}

// checkSchema validates a JSON document and appends its violations to r as
// errors with model-style paths. The returned error is for malformed JSON.
func checkSchema(schema *jsonschema.Schema, data []byte, prefix string, r *validation.Result) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []validation.Issue
	collectSchemaIssues(ve, prefix, &issues)
	if len(issues) == 0 {
		issues = append(issues, validation.Issue{FieldPath: prefix, Message: ve.Error(), Code: "schema"})
	}
	r.Merge(deduplicateIssues(issues))
	return nil
}

// collectSchemaIssues walks the error tree and keeps the leaf errors.
func collectSchemaIssues(ve *jsonschema.ValidationError, prefix string, issues *[]validation.Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectSchemaIssues(cause, prefix, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	keyword := ""
	if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
		keyword = kwPath[len(kwPath)-1]
	}
	if keyword == "" || keyword == "allOf" || keyword == "$ref" {
		return
	}

	*issues = append(*issues, validation.Issue{
		FieldPath: instancePath(prefix, ve.InstanceLocation),
		Message:   ve.ErrorKind.LocalizedString(printer),
		Code:      keyword,
	})
}

// instancePath converts a JSON instance location into an issue path, e.g.
// ["Changes", "0", "Target"] becomes "Changes[0].Target".
func instancePath(prefix string, location []string) string {
	path := prefix
	for _, segment := range location {
		if i, err := strconv.Atoi(segment); err == nil {
			path = validation.Index(path, i)
			continue
		}
		path = validation.Join(path, segment)
	}
	return path
}

func deduplicateIssues(issues []validation.Issue) []validation.Issue {
	seen := make(map[string]bool)
	var result []validation.Issue
	for _, issue := range issues {
		key := issue.FieldPath + "|" + issue.Code + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
