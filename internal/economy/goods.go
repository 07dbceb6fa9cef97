// Package economy holds the colony's stockpile, labor and the daily
// production and food-consumption rules. Everything here is a pure function
// of its inputs; the engine package owns mutation.
package economy

import "fmt"

// Good enumerates stockpiled goods.
type Good uint8

const (
	GoodBerries   Good = iota // Food, gathered
	GoodRations               // Food, carried in with the expedition
	GoodSmallGame             // Food, hunted
	GoodLargeGame             // Food, hunted in forest
	GoodGrain                 // Food, farmed
	GoodSticks                // Firewood
	GoodLogs                  // Firewood, tool-limited
	GoodRocks                 // Stores
	GoodStone                 // Stores, quarried
	GoodTools
)

// NumGoods is the size of the closed goods set.
const NumGoods = 10

var goodNames = [NumGoods]string{
	"berries", "rations", "small_game", "large_game", "grain",
	"sticks", "logs", "rocks", "stone", "tools",
}

// GoodName returns the snake_case name of a good.
func GoodName(g Good) string {
	if int(g) < NumGoods {
		return goodNames[g]
	}
	return "unknown"
}

func (g Good) String() string { return GoodName(g) }

// ParseGood is the inverse of GoodName.
func ParseGood(name string) (Good, error) {
	for i, n := range goodNames {
		if n == name {
			return Good(i), nil
		}
	}
	return 0, fmt.Errorf("unknown good %q", name)
}

func (g Good) MarshalText() ([]byte, error) { return []byte(GoodName(g)), nil }

func (g *Good) UnmarshalText(b []byte) error {
	v, err := ParseGood(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// IsFood reports whether a good can be eaten.
func (g Good) IsFood() bool { return g <= GoodGrain }

// FoodEntry pairs a food with its nutrition value. A slice of entries is
// both the value table and the eating order.
type FoodEntry struct {
	Good  Good    `yaml:"good" json:"good"`
	Value float64 `yaml:"value" json:"value"`
}

// DefaultFoodOrder eats perishables first and grain last.
func DefaultFoodOrder() []FoodEntry {
	return []FoodEntry{
		{GoodBerries, 0.3},
		{GoodRations, 1.0},
		{GoodSmallGame, 0.8},
		{GoodLargeGame, 2.0},
		{GoodGrain, 0.5},
	}
}

// Stockpile is a fixed-size array holding quantities of each good.
type Stockpile [NumGoods]int

// Add returns s plus d, clamping every good at zero.
func (s Stockpile) Add(d Stockpile) Stockpile {
	for i := range s {
		s[i] += d[i]
		if s[i] < 0 {
			s[i] = 0
		}
	}
	return s
}

// FoodValue sums stock × value over the given food table.
func (s Stockpile) FoodValue(foods []FoodEntry) float64 {
	total := 0.0
	for _, f := range foods {
		total += float64(s[f.Good]) * f.Value
	}
	return total
}

// Firewood is sticks plus logs.
func (s Stockpile) Firewood() int { return s[GoodSticks] + s[GoodLogs] }

// Stores is rocks plus stone.
func (s Stockpile) Stores() int { return s[GoodRocks] + s[GoodStone] }

// Map returns the non-zero goods keyed by name, for logs and journals.
func (s Stockpile) Map() map[string]int {
	out := make(map[string]int, NumGoods)
	for i, n := range s {
		if n != 0 {
			out[goodNames[i]] = n
		}
	}
	return out
}
