// Package fragments resolves language and platform template fragments by
// convention from a templates directory.
package fragments

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/omdtools/omd/internal/domain"
	"gopkg.in/yaml.v3"
)

// kindDirs maps a fragment kind to its directory under the templates root.
var kindDirs = map[domain.FragmentKind]string{
	domain.FragmentLanguage: "languages",
	domain.FragmentPlatform: "platforms",
}

// Loader implements domain.FragmentLoader over a templates directory laid
// out as languages/<name>.yaml.tmpl and platforms/<name>.yaml.tmpl.
type Loader struct {
	templatesDir string
}

func New(templatesDir string) *Loader {
	return &Loader{templatesDir: templatesDir}
}

var funcs = template.FuncMap{
	"has": func(needle string, haystack []string) bool {
		for _, v := range haystack {
			if v == needle {
				return true
			}
		}
		return false
	},
}

// Load renders the fragment for (kind, name) against ctx and parses the
// output as YAML. A missing template is (nil, ""); a template that fails
// to render or parse is (nil, warning) so one broken fragment never fails
// the whole run.
func (l *Loader) Load(kind domain.FragmentKind, name string, ctx domain.RenderContext) (*domain.Fragment, string) {
	dir, ok := kindDirs[kind]
	if !ok {
		return nil, fmt.Sprintf("unknown fragment kind %q", kind)
	}

	path := filepath.Join(l.templatesDir, dir, name+".yaml.tmpl")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ""
		}
		return nil, fmt.Sprintf("reading fragment %s/%s: %v", dir, name, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(string(raw))
	if err != nil {
		return nil, fmt.Sprintf("parsing fragment %s/%s: %v", dir, name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Sprintf("rendering fragment %s/%s: %v", dir, name, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &data); err != nil {
		return nil, fmt.Sprintf("fragment %s/%s produced invalid YAML: %v", dir, name, err)
	}
	if data == nil {
		return nil, ""
	}
	return &domain.Fragment{Name: name, Data: data}, ""
}
