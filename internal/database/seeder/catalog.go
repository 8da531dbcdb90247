package seeder

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the YAML seed file. Only skills are required.
type Catalog struct {
	Skills []CatalogSkill `yaml:"skills"`
	Demo   *DemoCatalog   `yaml:"demo,omitempty"`
}

type CatalogSkill struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type DemoCatalog struct {
	Recruiter DemoRecruiter `yaml:"recruiter"`
	Jobs      []DemoJob     `yaml:"jobs"`
}

type DemoRecruiter struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	CompanyName string `yaml:"company_name"`
	Website     string `yaml:"website"`
	Location    string `yaml:"location"`
}

type DemoJob struct {
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	Requirements   string   `yaml:"requirements"`
	Location       string   `yaml:"location"`
	SalaryRange    string   `yaml:"salary_range"`
	EmploymentType string   `yaml:"employment_type"`
	Skills         []string `yaml:"skills"`
}

func LoadCatalog(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// ParseCatalog decodes and checks a catalog. Skill names must be unique
// ignoring case.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Skills))
	for i, s := range c.Skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return Catalog{}, fmt.Errorf("catalog skill %d: empty name", i)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return Catalog{}, fmt.Errorf("catalog skill %q: duplicate", name)
		}
		seen[key] = struct{}{}
		c.Skills[i].Name = name
		c.Skills[i].Category = strings.TrimSpace(s.Category)
	}

	if c.Demo != nil {
		if strings.TrimSpace(c.Demo.Recruiter.Username) == "" || c.Demo.Recruiter.Password == "" {
			return Catalog{}, errors.New("catalog demo recruiter: username and password are required")
		}
		for i, j := range c.Demo.Jobs {
			for _, name := range j.Skills {
				if _, ok := seen[strings.ToLower(strings.TrimSpace(name))]; !ok {
					return Catalog{}, fmt.Errorf("catalog demo job %d: unknown skill %q", i, name)
				}
			}
		}
	}
	return c, nil
}
