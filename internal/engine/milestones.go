package engine

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/talgya/hexcolony/internal/economy"
	"github.com/talgya/hexcolony/internal/entropy"
)

// MilestoneRule adds a chronicle entry on days its condition holds. The
// condition is an expr expression over MilestoneEnv; one of Messages is
// picked at random when it fires.
type MilestoneRule struct {
	Name     string   `yaml:"name"`
	When     string   `yaml:"when"`
	Severity Severity `yaml:"severity"`
	Messages []string `yaml:"messages"`
}

// MilestoneEnv is what a milestone condition can see.
type MilestoneEnv struct {
	Day         int
	Season      string
	Population  int
	Happiness   float64
	Food        float64 // Total food value in stock
	Firewood    int
	Stores      int
	Idle        int
	Explorers   int
	Revealed    int
	Expeditions int // In progress
	Hungry      bool
}

// DefaultMilestones returns the morale flavor rules checked every tenth day.
func DefaultMilestones() []MilestoneRule {
	return []MilestoneRule{
		{
			Name:     "high morale",
			When:     "Day % 10 == 0 && Happiness > 0.8",
			Severity: SeverityInfo,
			Messages: []string{
				"The settlers hum work songs as they toil. Morale is high.",
				"Children play by the river. Your colony thrives.",
				"The evening fires burn bright with laughter and stories.",
			},
		},
		{
			Name:     "low morale",
			When:     "Day % 10 == 0 && Happiness < 0.4",
			Severity: SeverityWarning,
			Messages: []string{
				"Grumbling voices echo from the workers' quarters.",
				"The settlers move slowly, their spirits flagging.",
				"Tension hangs heavy in the air. Something must change.",
			},
		},
	}
}

type milestone struct {
	rule    MilestoneRule
	program *vm.Program
}

// compileMilestones compiles every rule condition into expr bytecode.
func compileMilestones(rules []MilestoneRule) ([]milestone, error) {
	out := make([]milestone, 0, len(rules))
	for _, r := range rules {
		if len(r.Messages) == 0 {
			return nil, fmt.Errorf("milestone %q has no messages", r.Name)
		}
		switch r.Severity {
		case SeverityInfo, SeverityWarning, SeverityDanger:
		default:
			return nil, fmt.Errorf("milestone %q: unknown severity %q", r.Name, r.Severity)
		}
		prog, err := expr.Compile(r.When, expr.Env(MilestoneEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile milestone %q: %w", r.Name, err)
		}
		out = append(out, milestone{rule: r, program: prog})
	}
	return out, nil
}

// ValidateMilestones reports the first rule that fails to compile.
func ValidateMilestones(rules []MilestoneRule) error {
	_, err := compileMilestones(rules)
	return err
}

// checkMilestones records an entry for every rule whose condition holds.
// Caller holds s.mu.
func (s *Simulation) checkMilestones() {
	env := s.milestoneEnv()
	for _, m := range s.milestones {
		result, err := vm.Run(m.program, env)
		if err != nil {
			slog.Warn("milestone condition error", "rule", m.rule.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); !ok || !match {
			continue
		}
		msg := m.rule.Messages[entropy.Intn(s.rng, len(m.rule.Messages))]
		s.record(env.Day, m.rule.Severity, msg)
		slog.Debug("milestone fired", "rule", m.rule.Name, "day", env.Day)
	}
}

func (s *Simulation) milestoneEnv() MilestoneEnv {
	st := s.state
	active := 0
	for _, e := range s.expeditions {
		if !e.Terminal() {
			active++
		}
	}
	return MilestoneEnv{
		Day:         st.Day,
		Season:      st.Season,
		Population:  st.Population,
		Happiness:   st.Happiness,
		Food:        st.Stock.FoodValue(s.rules.Food.Order),
		Firewood:    st.Stock.Firewood(),
		Stores:      st.Stock.Stores(),
		Idle:        st.Labor.Idle,
		Explorers:   st.Labor.Roles[economy.RoleExplorers],
		Revealed:    s.worldMap.RevealedTotal(),
		Expeditions: active,
		Hungry:      s.hungry,
	}
}
