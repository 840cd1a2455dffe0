// Package file provides a file-based DataFetcher implementation for the config package.
//
// This package reads configuration data from files on the filesystem.
// It implements the config.DataFetcher interface, returning raw bytes
// for subsequent parsing.
//
// The file is read at construction time and cached, meaning subsequent calls
// to Fetch() return the same data without re-reading the filesystem.
//
// The Fetcher also reports the absolute path of the file through Source. The
// config Provider hands it to the validated Config, so that path options
// resolve relative values against the directory of the configuration file.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("site.yml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//	source := fetcher.Source() // e.g. "/home/user/project/site.yml"
//
// Error Handling:
//   - Construction returns error if file cannot be read or path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
