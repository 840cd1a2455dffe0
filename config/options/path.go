package options

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
)

type pathKind struct {
	name   string
	exists func(path string) bool
}

//nolint:gochecknoglobals // immutable existence checks
var (
	anyPath = pathKind{name: "file or directory", exists: func(path string) bool {
		_, err := os.Stat(path)

		return err == nil
	}}
	dirPath = pathKind{name: "directory", exists: func(path string) bool {
		info, err := os.Stat(path)

		return err == nil && info.IsDir()
	}}
	filePath = pathKind{name: "file", exists: func(path string) bool {
		info, err := os.Stat(path)

		return err == nil && info.Mode().IsRegular()
	}}
)

// FilesystemObject validates a path to a file or directory.
//
// A relative path is resolved against the directory of the Config source
// document, when known. The normalized value is always absolute.
type FilesystemObject struct {
	config.Base
	config.OptionallyRequired

	exists bool
	kind   pathKind
}

// NewFilesystemObject creates an option for a path to a file or directory.
// With exists set, the path must exist.
func NewFilesystemObject(exists bool, opts ...Opt) *FilesystemObject {
	return &FilesystemObject{
		OptionallyRequired: newOptionallyRequired(opts),
		exists:             exists,
		kind:               anyPath,
	}
}

// NewDir creates an option for a path to a directory.
func NewDir(exists bool, opts ...Opt) *FilesystemObject {
	dir := NewFilesystemObject(exists, opts...)
	dir.kind = dirPath

	return dir
}

// NewFile creates an option for a path to a regular file.
func NewFile(exists bool, opts ...Opt) *FilesystemObject {
	file := NewFilesystemObject(exists, opts...)
	file.kind = filePath

	return file
}

// PreValidation captures the directory of the source document.
func (o *FilesystemObject) PreValidation(f *config.Field) error {
	if source := f.SourcePath(); source != "" {
		f.SetState(filepath.Dir(source))
	}

	return nil
}

// Validate applies default and required handling, then Run.
func (o *FilesystemObject) Validate(f *config.Field, value any) (any, error) {
	return o.Apply(value, func(value any) (any, error) {
		return o.Run(f, value)
	})
}

// Run resolves the path and checks its existence.
func (o *FilesystemObject) Run(f *config.Field, value any) (any, error) {
	path, ok := value.(string)
	if !ok {
		return nil, config.Errorf(config.ErrTypeMismatch,
			"Expected type: %s but received: %s", String, typeName(value))
	}

	if dir, hasDir := f.State().(string); hasDir && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	if o.exists && !o.kind.exists(path) {
		return nil, config.Errorf(config.ErrPathNotFound, "The path '%s' isn't an existing %s.", path, o.kind.name)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, config.Errorf(config.ErrInvalidValue, "Unable to resolve the path '%s': %v", path, err)
	}

	return abs, nil
}

// DocsDir is a directory option that must not be the directory of the source document.
type DocsDir struct {
	*FilesystemObject
}

// NewDocsDir creates a DocsDir option.
func NewDocsDir(exists bool, opts ...Opt) *DocsDir {
	return &DocsDir{FilesystemObject: NewDir(exists, opts...)}
}

// PostValidation rejects the source document's own directory.
func (d *DocsDir) PostValidation(f *config.Field) error {
	source := f.SourcePath()
	if source == "" {
		return nil
	}

	dir, _ := f.Config().Get(f.Key()).(string)
	if filepath.Dir(source) == dir {
		return config.Errorf(config.ErrInvalidValue,
			"The '%s' should not be the parent directory of the config file. "+
				"Use a child directory instead so that the '%s' is a sibling of the config file.",
			f.Key(), f.Key())
	}

	return nil
}

// SiteDir is a directory option for the output directory. The output
// directory and the source directory must not contain one another.
type SiteDir struct {
	*FilesystemObject

	docsDirKey string
}

// NewSiteDir creates a SiteDir option checked against the directory stored under docsDirKey.
func NewSiteDir(docsDirKey string, opts ...Opt) *SiteDir {
	return &SiteDir{
		FilesystemObject: NewDir(false, opts...),
		docsDirKey:       docsDirKey,
	}
}

// PostValidation rejects nested output and source directories.
func (s *SiteDir) PostValidation(f *config.Field) error {
	cfg := f.Config()

	docsDir, _ := cfg.Get(s.docsDirKey).(string)
	siteDir, _ := cfg.Get(f.Key()).(string)

	if docsDir == "" || siteDir == "" {
		return nil
	}

	separator := string(filepath.Separator)

	switch {
	case strings.HasPrefix(docsDir+separator, strings.TrimRight(siteDir, separator)+separator):
		return config.Errorf(config.ErrInvalidValue,
			"The '%s' should not be within the '%s' as this can mean the source files are "+
				"overwritten by the output or deleted when the output is cleaned. (%s: '%s', %s: '%s')",
			s.docsDirKey, f.Key(), f.Key(), siteDir, s.docsDirKey, docsDir)
	case strings.HasPrefix(siteDir+separator, strings.TrimRight(docsDir, separator)+separator):
		return config.Errorf(config.ErrInvalidValue,
			"The '%s' should not be within the '%s' as this leads to the build directory "+
				"being copied into itself and duplicate nested files in the '%s'. (%s: '%s', %s: '%s')",
			f.Key(), s.docsDirKey, f.Key(), f.Key(), siteDir, s.docsDirKey, docsDir)
	default:
		return nil
	}
}
