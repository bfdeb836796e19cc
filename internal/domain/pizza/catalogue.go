package pizza

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

var (
	// ErrUnknownPizza is returned for pizza ids missing from the menu.
	ErrUnknownPizza = errors.New("pizza type not found")
	// ErrUnknownRestaurant is returned for restaurant ids missing from the table.
	ErrUnknownRestaurant = errors.New("restaurant not found")
)

// Pizza is one menu entry.
type Pizza struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Price       decimal.Decimal `yaml:"price"`
	Description string          `yaml:"description"`
}

// Restaurant is one delivery partner.
type Restaurant struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Phone       string          `yaml:"phone"`
	DeliveryFee decimal.Decimal `yaml:"delivery_fee"`
}

// Catalogue is the fixed menu, restaurant and size tables.
type Catalogue struct {
	Pizzas      []Pizza                    `yaml:"pizzas"`
	Restaurants []Restaurant               `yaml:"restaurants"`
	Sizes       map[string]decimal.Decimal `yaml:"sizes"`
}

// DefaultCatalogue parses the embedded tables.
func DefaultCatalogue() (*Catalogue, error) {
	return ParseCatalogue(catalogueYAML)
}

// ParseCatalogue decodes a YAML catalogue.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse pizza catalogue: %w", err)
	}
	if len(c.Pizzas) == 0 || len(c.Restaurants) == 0 {
		return nil, errors.New("parse pizza catalogue: menu and restaurants must not be empty")
	}
	return &c, nil
}

// Pizza looks up a menu entry by id.
func (c *Catalogue) Pizza(id string) (Pizza, error) {
	for _, p := range c.Pizzas {
		if p.ID == id {
			return p, nil
		}
	}
	return Pizza{}, fmt.Errorf("%w: %s", ErrUnknownPizza, id)
}

// Restaurant looks up a restaurant by id.
func (c *Catalogue) Restaurant(id string) (Restaurant, error) {
	for _, r := range c.Restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return Restaurant{}, fmt.Errorf("%w: %s", ErrUnknownRestaurant, id)
}

// PizzaIDs lists menu ids in menu order.
func (c *Catalogue) PizzaIDs() []string {
	ids := make([]string, 0, len(c.Pizzas))
	for _, p := range c.Pizzas {
		ids = append(ids, p.ID)
	}
	return ids
}

// RestaurantIDs lists restaurant ids in table order.
func (c *Catalogue) RestaurantIDs() []string {
	ids := make([]string, 0, len(c.Restaurants))
	for _, r := range c.Restaurants {
		ids = append(ids, r.ID)
	}
	return ids
}

// SizeMultiplier returns the price multiplier for size. Unrecognised sizes
// price like medium (1.0).
func (c *Catalogue) SizeMultiplier(size string) decimal.Decimal {
	if m, ok := c.Sizes[NormalizeSize(size)]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// NormalizeSize folds "Extra Large" and "extra-large" into "extra_large".
func NormalizeSize(size string) string {
	size = strings.ToLower(strings.TrimSpace(size))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(size)
}
