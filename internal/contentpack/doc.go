// Package contentpack models a Content Patcher content pack and turns it into
// the manifest.json and content.json pair the framework loads. It provides
// the in-memory model, the package validator (structural checks plus the
// framework's compatibility rules), the serializer, and loaders for YAML
// source files and existing document pairs.
package contentpack
