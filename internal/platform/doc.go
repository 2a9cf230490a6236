// Package platform provides the OS-backed filesystem used to read and write
// package documents. Writes go to a temporary file in the target directory
// and are renamed into place, so readers never see a partially written file.
// Permission changes are a no-op on Windows.
package platform
