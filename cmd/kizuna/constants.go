package main

// Default limits for CLI commands.
const (
	DefaultSearchLimit = 10
)

// Valid export formats.
var validExportFormats = []string{"json", "csv"}
