// Package validation holds the result types shared by every validator in
// cpkit and a small schema-driven checker for required fields. Entity types
// declare their fields once as a Schema table; the same Validate routine then
// works for any of them, with nested entities reported under dotted paths
// such as "Manifest.ContentPackFor.UniqueID".
package validation
