package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a catalog file or entry cannot be located.
var ErrNotFound = errors.New("catalog: not found")

// Category groups add-on features on the membership configurator.
type Category string

const (
	CategoryFitness   Category = "fitness"
	CategorySpa       Category = "spa"
	CategoryPersonal  Category = "personal"
	CategoryExclusive Category = "exclusive"
)

// Valid reports whether c is one of the known add-on categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFitness, CategorySpa, CategoryPersonal, CategoryExclusive:
		return true
	default:
		return false
	}
}

// PresetPlan is a fixed membership tier with bundled features.
type PresetPlan struct {
	ID                   int      `yaml:"id"`
	Slug                 string   `yaml:"slug"`
	Title                string   `yaml:"title"`
	Subtitle             string   `yaml:"subtitle"`
	Description          string   `yaml:"description"`
	ButtonText           string   `yaml:"button_text"`
	Badge                string   `yaml:"badge"`
	DiscountLabel        string   `yaml:"discount_label"`
	MonthlyPrice         int64    `yaml:"monthly_price"`
	YearlyPrice          int64    `yaml:"yearly_price"`
	OriginalMonthlyPrice int64    `yaml:"original_monthly_price"`
	OriginalYearlyPrice  int64    `yaml:"original_yearly_price"`
	Features             []string `yaml:"features"`
	Popular              bool     `yaml:"popular"`
}

// AddOnFeature is an individually selectable service bundle for custom plans.
type AddOnFeature struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	MonthlyPrice int64    `yaml:"monthly_price"`
	YearlyPrice  int64    `yaml:"yearly_price"`
	Category     Category `yaml:"category"`
	Features     []string `yaml:"features"`
}

// GalleryCategory describes a gallery collection filter.
type GalleryCategory struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// GalleryItem is a single photo or video tile.
type GalleryItem struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"` // "image" or "video"
	Src         string `yaml:"src"`
	Thumbnail   string `yaml:"thumbnail"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Featured    bool   `yaml:"featured"`
}

// Trainer is a member of the coaching staff shown on /trainers.
type Trainer struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Title           string   `yaml:"title"`
	Specializations []string `yaml:"specializations"`
	Experience      string   `yaml:"experience"`
	Languages       []string `yaml:"languages"`
	Image           string   `yaml:"image"`
	Bio             string   `yaml:"bio"`
	Certifications  []string `yaml:"certifications"`
	Achievements    []string `yaml:"achievements"`
	Availability    string   `yaml:"availability"`
	Rating          float64  `yaml:"rating"`
}

// InterestOption is a choice in the contact form's "interested in" select.
type InterestOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Catalog holds all static content. It is loaded once and never mutated in place.
type Catalog struct {
	Currency          string            `yaml:"currency"`
	Plans             []PresetPlan      `yaml:"plans"`
	AddOns            []AddOnFeature    `yaml:"add_ons"`
	GalleryCategories []GalleryCategory `yaml:"gallery_categories"`
	Gallery           []GalleryItem     `yaml:"gallery"`
	Trainers          []Trainer         `yaml:"trainers"`
	Interests         []InterestOption  `yaml:"interests"`
}

// AddOn looks up an add-on by id.
func (c *Catalog) AddOn(id string) (AddOnFeature, bool) {
	if c == nil {
		return AddOnFeature{}, false
	}
	for _, a := range c.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOnFeature{}, false
}

// Plan looks up a preset plan by slug.
func (c *Catalog) Plan(slug string) (PresetPlan, bool) {
	if c == nil {
		return PresetPlan{}, false
	}
	slug = strings.TrimSpace(strings.ToLower(slug))
	for _, p := range c.Plans {
		if p.Slug == slug {
			return p, true
		}
	}
	return PresetPlan{}, false
}

// GalleryItem looks up a gallery item by id.
func (c *Catalog) GalleryItem(id string) (GalleryItem, bool) {
	if c == nil {
		return GalleryItem{}, false
	}
	for _, it := range c.Gallery {
		if it.ID == id {
			return it, true
		}
	}
	return GalleryItem{}, false
}

// HasGalleryCategory reports whether id names a configured gallery category.
func (c *Catalog) HasGalleryCategory(id string) bool {
	if c == nil {
		return false
	}
	for _, gc := range c.GalleryCategories {
		if gc.ID == id {
			return true
		}
	}
	return false
}

// HasInterest reports whether v is an allowed contact form interest value.
func (c *Catalog) HasInterest(v string) bool {
	if c == nil {
		return false
	}
	for _, in := range c.Interests {
		if in.Value == v {
			return true
		}
	}
	return false
}

// ValidationError lists every invalid field found in a catalog file.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog validation failed: [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the offending field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Validate checks id uniqueness and price sanity. It only runs on catalogs read
// from disk; the built-in catalog is trusted.
func (c *Catalog) Validate() error {
	var bad []string
	plans := map[string]struct{}{}
	for i, p := range c.Plans {
		if strings.TrimSpace(p.Slug) == "" {
			bad = append(bad, fmt.Sprintf("plans[%d].slug", i))
		} else if _, dup := plans[p.Slug]; dup {
			bad = append(bad, fmt.Sprintf("plans[%d].slug duplicate %q", i, p.Slug))
		}
		plans[p.Slug] = struct{}{}
		if p.MonthlyPrice < 0 || p.YearlyPrice < 0 || p.OriginalMonthlyPrice < 0 || p.OriginalYearlyPrice < 0 {
			bad = append(bad, fmt.Sprintf("plans[%d] negative price", i))
		}
	}
	addOns := map[string]struct{}{}
	for i, a := range c.AddOns {
		if strings.TrimSpace(a.ID) == "" {
			bad = append(bad, fmt.Sprintf("add_ons[%d].id", i))
		} else if _, dup := addOns[a.ID]; dup {
			bad = append(bad, fmt.Sprintf("add_ons[%d].id duplicate %q", i, a.ID))
		}
		addOns[a.ID] = struct{}{}
		if a.MonthlyPrice < 0 || a.YearlyPrice < 0 {
			bad = append(bad, fmt.Sprintf("add_ons[%d] negative price", i))
		}
		if !a.Category.Valid() {
			bad = append(bad, fmt.Sprintf("add_ons[%d].category %q", i, a.Category))
		}
	}
	cats := map[string]struct{}{}
	for i, gc := range c.GalleryCategories {
		if _, dup := cats[gc.ID]; dup || strings.TrimSpace(gc.ID) == "" {
			bad = append(bad, fmt.Sprintf("gallery_categories[%d].id", i))
		}
		cats[gc.ID] = struct{}{}
	}
	items := map[string]struct{}{}
	for i, it := range c.Gallery {
		if _, dup := items[it.ID]; dup || strings.TrimSpace(it.ID) == "" {
			bad = append(bad, fmt.Sprintf("gallery[%d].id", i))
		}
		items[it.ID] = struct{}{}
		if _, ok := cats[it.Category]; !ok {
			bad = append(bad, fmt.Sprintf("gallery[%d].category %q", i, it.Category))
		}
	}
	if len(bad) > 0 {
		return &ValidationError{fields: bad}
	}
	return nil
}
