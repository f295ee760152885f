package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// Fixture is a small hand-authored scenario loaded from a YAML document
// rather than the four-file JSON dictionary format — mirroring
// dshills-dungo's use of YAML for world/scenario test fixtures.
// Production assets stay JSON per spec.md §6.1; only LoadFixture reads
// this shape, and neither the driver nor any current test calls it.
type Fixture struct {
	TaskID string          `yaml:"task_id"`
	World  *worldmodel.World `yaml:"world"`
	Goal   *yamlGoal       `yaml:"goal"`
}

// yamlGoal lets a test fixture author a goal in a readable YAML shape
// instead of the nested JSON literal arrays; ToGoal converts it to the
// real goalmodel.Goal.
type yamlGoal struct {
	Objectives []yamlObjective `yaml:"objectives"`
}

type yamlObjective struct {
	Kind     string       `yaml:"kind"`
	Literals [][]yamlLit  `yaml:"literals"`
	TotalCnt *int         `yaml:"total_cnt,omitempty"`
}

type yamlLit struct {
	Attribute string `yaml:"attribute"`
	Name      string `yaml:"name,omitempty"`
	Colour    string `yaml:"colour,omitempty"`
	Count     int    `yaml:"count,omitempty"`
	Negated   bool   `yaml:"negated,omitempty"`
}

// ToGoal converts the YAML fixture shape into a goalmodel.Goal.
func (yg *yamlGoal) ToGoal() (*goalmodel.Goal, error) {
	g := goalmodel.NewGoal()
	for _, yo := range yg.Objectives {
		obj := goalmodel.Objective{Kind: goalmodel.Kind(yo.Kind), TotalCnt: yo.TotalCnt}
		var cnf []goalmodel.Clause
		for _, clause := range yo.Literals {
			var c goalmodel.Clause
			for _, l := range clause {
				c = append(c, goalmodel.Literal{
					Attribute: goalmodel.Attribute(l.Attribute),
					Name:      l.Name,
					Colour:    l.Colour,
					Count:     l.Count,
					Negated:   l.Negated,
				})
			}
			cnf = append(cnf, c)
		}
		obj.Specs = []goalmodel.Spec{{CNF: cnf}}
		g.Add(obj)
	}
	return g, nil
}

// LoadFixture reads a single YAML fixture file.
func LoadFixture(path string) (*Fixture, *goalmodel.Goal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("assets: read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("assets: parse fixture: %w", err)
	}
	var goal *goalmodel.Goal
	if f.Goal != nil {
		goal, err = f.Goal.ToGoal()
		if err != nil {
			return nil, nil, err
		}
	}
	return &f, goal, nil
}
