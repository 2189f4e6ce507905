package specialty

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/billing-assistant/internal/model"
)

type tableFile struct {
	Specialties []model.Specialty `yaml:"specialties"`
}

// LoadFile reads a specialty table from a YAML file. The file lists
// specialties in declaration order:
//
//	specialties:
//	  - key: cardiology
//	    name: Cardiology Billing Services
//	    url: https://example.com/cardiology
//	    keywords: [cardiology, cardiac]
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "specialty: read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML specialty table.
func Parse(data []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "specialty: decode yaml")
	}
	t := Table(f.Specialties)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that keys are unique and every specialty is routable.
func (t Table) Validate() error {
	if len(t) == 0 {
		return eris.New("specialty: table is empty")
	}
	seen := make(map[string]struct{}, len(t))
	for i, s := range t {
		key := strings.TrimSpace(s.Key)
		if key == "" {
			return eris.Errorf("specialty: entry %d has no key", i)
		}
		if _, dup := seen[key]; dup {
			return eris.Errorf("specialty: duplicate key %q", key)
		}
		seen[key] = struct{}{}
		if s.URL == "" {
			return eris.Errorf("specialty: %s has no url", key)
		}
		if len(s.Keywords) == 0 {
			return eris.Errorf("specialty: %s has no keywords", key)
		}
	}
	return nil
}

// Resolve returns the table from path, or the built-in table when path is
// empty.
func Resolve(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	return LoadFile(path)
}
