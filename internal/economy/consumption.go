package economy

import (
	"fmt"
	"math"
)

// FoodRules govern daily eating and its effect on morale.
type FoodRules struct {
	PerCapita float64     `yaml:"per_capita"`
	Order     []FoodEntry `yaml:"order"`
	Recovery  float64     `yaml:"recovery"` // happiness gained on a fed day
	Decay     float64     `yaml:"decay"`    // happiness lost on a hungry day
}

// DefaultFoodRules returns the standard diet.
func DefaultFoodRules() FoodRules {
	return FoodRules{
		PerCapita: 0.1,
		Order:     DefaultFoodOrder(),
		Recovery:  0.01,
		Decay:     0.05,
	}
}

// Validate rejects non-positive food values and negative rates.
func (f FoodRules) Validate() error {
	if f.PerCapita < 0 || f.Recovery < 0 || f.Decay < 0 {
		return fmt.Errorf("food rules: negative rate")
	}
	for _, e := range f.Order {
		if !e.Good.IsFood() {
			return fmt.Errorf("food rules: %s is not food", e.Good)
		}
		if e.Value <= 0 {
			return fmt.Errorf("food rules: %s value must be positive", e.Good)
		}
	}
	return nil
}

// Need is the food value the population eats in a day.
func (f FoodRules) Need(population int, r Rationing) float64 {
	return float64(population) * f.PerCapita * r.Multiplier()
}

// ceilTolerance keeps ceil(0.6/0.3) at 2 despite float error.
const ceilTolerance = 1e-9

// Consume eats need worth of food in priority order. If the stockpile's
// total food value is short of need, nothing is eaten and ok is false.
func Consume(stock Stockpile, need float64, order []FoodEntry) (Stockpile, bool) {
	if stock.FoodValue(order) < need {
		return stock, false
	}
	remaining := need
	for _, f := range order {
		if remaining <= 0 {
			break
		}
		want := int(math.Ceil(remaining/f.Value - ceilTolerance))
		take := min(stock[f.Good], want)
		stock[f.Good] -= take
		remaining -= float64(take) * f.Value
	}
	return stock, true
}

// Feed applies a day's eating and the resulting morale change to s.
func Feed(s State, rules FoodRules) (State, bool) {
	stock, fed := Consume(s.Stock, rules.Need(s.Population, s.Policies.Rationing), rules.Order)
	s.Stock = stock
	if fed {
		s.Happiness = ClampHappiness(s.Happiness + rules.Recovery)
	} else {
		s.Happiness = ClampHappiness(s.Happiness - rules.Decay)
	}
	return s, fed
}
