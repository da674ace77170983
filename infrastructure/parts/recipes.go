package parts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/synthome/stitch/domain/recipe"
	"github.com/synthome/stitch/domain/sequence"
)

type recipesDoc struct {
	Recipes []cocktailRecipeDoc `yaml:"recipes"`
}

type cocktailRecipeDoc struct {
	Name                 string   `yaml:"name"`
	Description          string   `yaml:"description"`
	ModuleOrder          []string `yaml:"module_order"`
	OrientationPattern   []string `yaml:"orientation_pattern"`
	ModuleSpacing        int      `yaml:"module_spacing"`
	RepeatSpacing        int      `yaml:"repeat_spacing"`
	RepeatCount          int      `yaml:"repeat_count"`
	CTCFBrackets         bool     `yaml:"ctcf_brackets"`
	RepeatSeparator      string   `yaml:"repeat_separator"`
	SeparatorOrientation string   `yaml:"separator_orientation"`
	Promoter             string   `yaml:"promoter"`
}

// LoadRecipes reads a custom recipe document from path.
func LoadRecipes(path string) ([]recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe document: %w", err)
	}
	return ParseRecipes(data)
}

// ParseRecipes parses a YAML document of cocktail-shaped recipe records
// into runnable recipes. Every record is validated so a malformed
// document fails before any construct is built.
func ParseRecipes(data []byte) ([]recipe.Recipe, error) {
	var doc recipesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse recipe document: %w", err)
	}
	if len(doc.Recipes) == 0 {
		return nil, fmt.Errorf("recipe document holds no recipes")
	}
	recipes := make([]recipe.Recipe, 0, len(doc.Recipes))
	for _, r := range doc.Recipes {
		cfg, err := r.toConfig()
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, cfg)
	}
	return recipes, nil
}

func (d cocktailRecipeDoc) toConfig() (recipe.CocktailConfig, error) {
	if d.Name == "" {
		return recipe.CocktailConfig{}, fmt.Errorf("recipe document contains a record without a name")
	}
	if d.Promoter == "" {
		return recipe.CocktailConfig{}, fmt.Errorf("recipe %s: promoter is required", d.Name)
	}
	pattern := make([]sequence.Orientation, 0, len(d.OrientationPattern))
	for _, s := range d.OrientationPattern {
		o, err := sequence.ParseOrientation(s)
		if err != nil {
			return recipe.CocktailConfig{}, fmt.Errorf("recipe %s: %w", d.Name, err)
		}
		pattern = append(pattern, o)
	}
	separatorOrient := sequence.Forward
	if d.SeparatorOrientation != "" {
		o, err := sequence.ParseOrientation(d.SeparatorOrientation)
		if err != nil {
			return recipe.CocktailConfig{}, fmt.Errorf("recipe %s: %w", d.Name, err)
		}
		separatorOrient = o
	}
	cfg := recipe.CocktailConfig{
		Name:               d.Name,
		Description:        d.Description,
		ModuleOrder:        d.ModuleOrder,
		OrientationPattern: pattern,
		ModuleSpacing:      d.ModuleSpacing,
		RepeatSpacing:      d.RepeatSpacing,
		RepeatCount:        d.RepeatCount,
		CTCFBrackets:       d.CTCFBrackets,
		RepeatSeparator:    d.RepeatSeparator,
		SeparatorOrient:    separatorOrient,
		Promoter:           d.Promoter,
	}
	if err := cfg.Validate(); err != nil {
		return recipe.CocktailConfig{}, err
	}
	return cfg, nil
}
