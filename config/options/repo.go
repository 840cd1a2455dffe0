package options

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/0xalexb/hjarta-config/config"
)

// repoHost returns the lower-cased host of the repository URL stored under key.
func repoHost(cfg *config.Config, key string) (string, bool) {
	raw, ok := cfg.Get(key).(string)
	if !ok || raw == "" {
		return "", false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	return strings.ToLower(parsed.Host), true
}

// EditURI is a string option whose value is derived from the repository URL
// when unset. A non-empty value always ends with a slash.
type EditURI struct {
	*Type

	repoURLKey string
}

// NewEditURI creates an EditURI option derived from the URL stored under repoURLKey.
func NewEditURI(repoURLKey string) *EditURI {
	return &EditURI{Type: NewType(String), repoURLKey: repoURLKey}
}

// PostValidation derives and normalizes the edit URI.
func (e *EditURI) PostValidation(f *config.Field) error {
	cfg := f.Config()

	editURI, _ := cfg.Get(f.Key()).(string)

	if cfg.Get(f.Key()) == nil {
		switch host, _ := repoHost(cfg, e.repoURLKey); host {
		case "github.com", "gitlab.com":
			editURI = "edit/master/docs/"
		case "bitbucket.org":
			editURI = "src/default/docs/"
		}
	}

	if editURI == "" {
		return nil
	}

	if !strings.HasSuffix(editURI, "/") {
		editURI += "/"
	}

	cfg.Set(f.Key(), editURI)

	return nil
}

// RepoName is a string option whose value is derived from the repository URL when unset.
type RepoName struct {
	*Type

	repoURLKey string
}

// NewRepoName creates a RepoName option derived from the URL stored under repoURLKey.
func NewRepoName(repoURLKey string) *RepoName {
	return &RepoName{Type: NewType(String), repoURLKey: repoURLKey}
}

// PostValidation derives the repository name from its host.
func (r *RepoName) PostValidation(f *config.Field) error {
	cfg := f.Config()
	if cfg.Get(f.Key()) != nil {
		return nil
	}

	host, ok := repoHost(cfg, r.repoURLKey)
	if !ok {
		return nil
	}

	var name string

	switch host {
	case "github.com":
		name = "GitHub"
	case "bitbucket.org":
		name = "Bitbucket"
	case "gitlab.com":
		name = "GitLab"
	default:
		label, _, _ := strings.Cut(host, ".")
		name = titleCase(label)
	}

	cfg.Set(f.Key(), name)

	return nil
}

// titleCase upper-cases the first letter of every alphabetic run and lower-cases the rest.
// Any non-letter ends a run, digits included, so "abc1def" becomes "Abc1Def".
func titleCase(s string) string {
	var (
		builder strings.Builder
		inWord  bool
	)

	for _, r := range s {
		isLetter := unicode.IsLetter(r)

		switch {
		case isLetter && !inWord:
			builder.WriteRune(unicode.ToUpper(r))
		case isLetter:
			builder.WriteRune(unicode.ToLower(r))
		default:
			builder.WriteRune(r)
		}

		inWord = isLetter
	}

	return builder.String()
}

// URITemplate is a parsed edit URI template. It supports the substitutes
// {path} and {path_noext}, the !q conversion that URL-quotes the substitute,
// and {{ / }} for literal braces.
type URITemplate struct {
	raw   string
	parts []templatePart
}

type templatePart struct {
	literal string
	name    string
	quote   bool
}

// ParseURITemplate parses raw into a URITemplate.
func ParseURITemplate(raw string) (URITemplate, error) {
	var (
		parts   []templatePart
		literal strings.Builder
	)

	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				literal.WriteByte('{')
				i++

				continue
			}

			end := strings.IndexByte(raw[i:], '}')
			if end < 0 {
				return URITemplate{}, config.Errorf(config.ErrInvalidValue, "Single '{' encountered in format string")
			}

			part, err := parseSubstitute(raw[i+1 : i+end])
			if err != nil {
				return URITemplate{}, err
			}

			if literal.Len() > 0 {
				parts = append(parts, templatePart{literal: literal.String()})
				literal.Reset()
			}

			parts = append(parts, part)
			i += end
		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				literal.WriteByte('}')
				i++

				continue
			}

			return URITemplate{}, config.Errorf(config.ErrInvalidValue, "Single '}' encountered in format string")
		default:
			literal.WriteByte(raw[i])
		}
	}

	if literal.Len() > 0 {
		parts = append(parts, templatePart{literal: literal.String()})
	}

	return URITemplate{raw: raw, parts: parts}, nil
}

func parseSubstitute(field string) (templatePart, error) {
	name, conversion, hasConversion := strings.Cut(field, "!")

	part := templatePart{name: name}

	if hasConversion {
		if conversion != "q" {
			return templatePart{}, config.Errorf(config.ErrInvalidValue,
				"Unknown conversion specifier %s", conversion)
		}

		part.quote = true
	}

	if name != "path" && name != "path_noext" {
		return templatePart{}, config.Errorf(config.ErrInvalidValue, "Unknown template substitute: '%s'", name)
	}

	return part, nil
}

// Format renders the template for a page.
func (t URITemplate) Format(path, pathNoExt string) string {
	var builder strings.Builder

	for _, part := range t.parts {
		value := part.literal

		switch part.name {
		case "path":
			value = path
		case "path_noext":
			value = pathNoExt
		}

		if part.quote {
			value = url.PathEscape(value)
		}

		builder.WriteString(value)
	}

	return builder.String()
}

// String returns the template source.
func (t URITemplate) String() string {
	return t.raw
}

// EditURITemplate validates an edit URI template into a URITemplate.
type EditURITemplate struct {
	config.Base

	editURIKey string
}

// NewEditURITemplate creates an EditURITemplate option. editURIKey names the
// plain edit URI field that the template supersedes, and may be empty.
func NewEditURITemplate(editURIKey string) *EditURITemplate {
	return &EditURITemplate{editURIKey: editURIKey}
}

// Validate is Run; an absent template stays absent.
func (e *EditURITemplate) Validate(f *config.Field, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	return e.Run(f, value)
}

// Run parses the template. A URITemplate is parsed again from its source.
func (e *EditURITemplate) Run(_ *config.Field, value any) (any, error) {
	if template, ok := value.(URITemplate); ok {
		value = template.raw
	}

	raw, ok := value.(string)
	if !ok {
		return nil, config.Errorf(config.ErrTypeMismatch,
			"Expected type: %s but received: %s", String, typeName(value))
	}

	template, err := ParseURITemplate(raw)
	if err != nil {
		return nil, err
	}

	return template, nil
}

// PostValidation warns when the plain edit URI is set next to the template.
func (e *EditURITemplate) PostValidation(f *config.Field) error {
	if e.editURIKey == "" {
		return nil
	}

	cfg := f.Config()

	template, hasTemplate := cfg.Get(f.Key()).(URITemplate)
	editURI, _ := cfg.Get(e.editURIKey).(string)

	if hasTemplate && template.raw != "" && editURI != "" {
		f.Warnf("The option '%s' has no effect when '%s' is set.", e.editURIKey, f.Key())
	}

	return nil
}
