// Package prompts turns a style name, or an explicit template, into the
// prompt template sent to the model.
//
// A style is a file in the styles directory; its name is the file name without
// extension. Files whose name starts with "_" are fragments: they are not
// styles themselves but can be pulled into a style with {include:<file name>}.
package prompts

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/regex"
)

const (
	DefaultStyle = "summary"

	PlaceholderTitle = "{original_title}"
	PlaceholderBody  = "{issue_body}"

	fragmentPrefix = "_"
)

//go:embed styles/*.txt
var embedded embed.FS

type Resolver struct {
	fsys fs.FS
}

// NewResolver reads styles and fragments from the root of fsys.
func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// Default returns a resolver over the bundled styles.
func Default() *Resolver {
	sub, err := fs.Sub(embedded, "styles")
	if err != nil {
		panic(fmt.Sprintf("bundled styles: %v", err))
	}
	return NewResolver(sub)
}

// Resolve returns explicit when it is non-empty, otherwise the named style
// with its includes expanded.
func (r *Resolver) Resolve(style, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if style == "" {
		style = DefaultStyle
	}

	styleFiles, fragments, err := r.files()
	if err != nil {
		return "", err
	}

	var matched string
	for _, name := range styleFiles {
		if styleName(name) == style {
			matched = name
			break
		}
	}
	if matched == "" {
		names := make([]string, 0, len(styleFiles))
		for _, name := range styleFiles {
			names = append(names, styleName(name))
		}
		return "", errors.ErrStyleNotFound.
			WithContext("style", style).
			WithContext("detail", fmt.Sprintf("style %s is not supported, please use one of %s", style, strings.Join(names, ", ")))
	}

	content, err := fs.ReadFile(r.fsys, matched)
	if err != nil {
		return "", errors.NewAppError(errors.TypeInternal, "failed to read style file", err).WithContext("style", style)
	}

	return r.expandIncludes(string(content), fragments)
}

func (r *Resolver) expandIncludes(content string, fragments []string) (string, error) {
	var expandErr error
	out := regex.IncludeDirective.ReplaceAllStringFunc(content, func(directive string) string {
		if expandErr != nil {
			return directive
		}
		name := strings.TrimSpace(regex.IncludeDirective.FindStringSubmatch(directive)[1])
		if !contains(fragments, name) {
			expandErr = errors.ErrFragmentNotFound.
				WithContext("fragment", name).
				WithContext("detail", fmt.Sprintf("included file %s doesn't exist, please use one of %s", name, strings.Join(fragments, ", ")))
			return directive
		}
		data, err := fs.ReadFile(r.fsys, name)
		if err != nil {
			expandErr = errors.NewAppError(errors.TypeInternal, "failed to read included file", err).WithContext("fragment", name)
			return directive
		}
		return string(data)
	})
	if expandErr != nil {
		return "", expandErr
	}
	return out, nil
}

// Styles lists the available style names, sorted.
func (r *Resolver) Styles() ([]string, error) {
	styleFiles, _, err := r.files()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(styleFiles))
	for _, name := range styleFiles {
		names = append(names, styleName(name))
	}
	sort.Strings(names)
	return names, nil
}

// Fragments lists the file names that can be used in include directives.
func (r *Resolver) Fragments() ([]string, error) {
	_, fragments, err := r.files()
	return fragments, err
}

func (r *Resolver) files() (styleFiles, fragments []string, err error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, nil, errors.NewAppError(errors.TypeInternal, "failed to list styles", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), fragmentPrefix) {
			fragments = append(fragments, entry.Name())
		} else {
			styleFiles = append(styleFiles, entry.Name())
		}
	}
	return styleFiles, fragments, nil
}

// Render substitutes the issue title and body into tmpl in a single pass, so
// placeholder-like text inside the body is left alone.
func Render(tmpl, title, body string) string {
	return regex.Placeholder.ReplaceAllStringFunc(tmpl, func(ph string) string {
		switch ph {
		case PlaceholderTitle:
			return title
		case PlaceholderBody:
			return body
		default:
			return ph
		}
	})
}

func styleName(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
