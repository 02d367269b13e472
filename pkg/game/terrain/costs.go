package terrain

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Infinity is the impassable sentinel. It is larger than any real path cost
// and small enough that adding one cell's cost cannot overflow.
const Infinity = math.MaxInt32 / 2

//go:embed costs.yaml
var defaultCosts []byte

// CostTable maps (category, terrain) to the cost of entering that terrain.
// Distance fields, movement policies and the scheduler all read the same table.
type CostTable struct {
	costs [NumCategories][NumTerrain]int
}

// Cost returns the cost for c to enter t, or Infinity
func (ct *CostTable) Cost(c Category, t Terrain) int {
	if int(c) >= NumCategories || int(t) >= NumTerrain {
		return Infinity
	}
	return ct.costs[c][t]
}

// Passable reports whether c may enter t at all
func (ct *CostTable) Passable(c Category, t Terrain) bool {
	return ct.Cost(c, t) != Infinity
}

// costValue is a single cost-table entry: a non-negative integer or "inf".
type costValue int

func (v *costValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: cost must be a scalar", node.Line)
	}
	if node.Value == "inf" {
		*v = Infinity
		return nil
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: cost %q is neither an integer nor inf", node.Line, node.Value)
	}
	if n < 0 || n >= Infinity {
		return fmt.Errorf("line %d: cost %d out of range", node.Line, n)
	}
	*v = costValue(n)
	return nil
}

// ParseCosts parses a YAML cost table. Every category must list every terrain.
//
// Postcondition: Returns a complete CostTable or a non-nil error.
func ParseCosts(data []byte) (*CostTable, error) {
	var raw map[string]map[string]costValue
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing cost table YAML: %w", err)
	}

	ct := &CostTable{}
	seen := make(map[Category]bool)
	for catName, row := range raw {
		cat, ok := ParseCategory(catName)
		if !ok {
			return nil, fmt.Errorf("unknown actor category %q", catName)
		}
		seen[cat] = true

		filled := 0
		for terName, cost := range row {
			ter, ok := ParseTerrain(terName)
			if !ok {
				return nil, fmt.Errorf("category %s: unknown terrain %q", catName, terName)
			}
			ct.costs[cat][ter] = int(cost)
			filled++
		}
		if filled != NumTerrain {
			return nil, fmt.Errorf("category %s: lists %d of %d terrain types", catName, filled, NumTerrain)
		}
	}
	for c := 0; c < NumCategories; c++ {
		if !seen[Category(c)] {
			return nil, fmt.Errorf("missing actor category %q", Category(c))
		}
	}
	return ct, nil
}

// LoadCosts reads a YAML cost table from path
func LoadCosts(path string) (*CostTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cost table %s: %w", path, err)
	}
	return ParseCosts(data)
}

// DefaultCosts returns the built-in cost table
func DefaultCosts() *CostTable {
	ct, err := ParseCosts(defaultCosts)
	if err != nil {
		panic("built-in cost table is invalid: " + err.Error())
	}
	return ct
}
