// Package scaffold generates a new content pack source directory from
// embedded templates. It powers "cpkit init", producing a package.yaml that
// validates out of the box plus a short README.
package scaffold
