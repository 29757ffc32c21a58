package utils

import (
	"path/filepath"

	"github.com/funvibe/plc/internal/config"
)

// ExtractProgramName derives a program name from a file path.
// It takes the base filename and removes any recognized source extension.
func ExtractProgramName(path string) string {
	name := filepath.Base(path)
	return config.TrimSourceExt(name)
}

// GeneratedPath returns where generated code for sourcePath goes by default:
// the same directory, with the class name as file name.
func GeneratedPath(sourcePath, className string) string {
	dir := filepath.Dir(sourcePath)
	return filepath.Join(dir, className+".java")
}
