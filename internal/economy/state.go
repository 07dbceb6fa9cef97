package economy

// State is the colony at the end of a day. It is a value: copy it freely,
// replace it whole.
type State struct {
	Population int       `json:"population"`
	Stock      Stockpile `json:"stock"`
	Happiness  float64   `json:"happiness"`
	Labor      Labor     `json:"labor"`
	Day        int       `json:"day"`
	Season     string    `json:"season"`
	Policies   Policies  `json:"policies"`
}

// Happiness bounds.
const (
	HappinessMin = 0.1
	HappinessMax = 1.0
)

// StartingState is the colony as it lands.
func StartingState() State {
	s := State{
		Population: 50,
		Happiness:  1.0,
		Day:        1,
		Policies:   DefaultPolicies(),
	}
	s.Stock[GoodRations] = 100
	s.Stock[GoodGrain] = 20
	s.Stock[GoodSticks] = 50
	s.Stock[GoodLogs] = 20
	s.Stock[GoodRocks] = 30
	s.Stock[GoodStone] = 10
	s.Stock[GoodTools] = 5

	s.Labor.Roles[RoleGatherers] = 15
	s.Labor.Roles[RoleHunters] = 5
	s.Labor.Roles[RoleWoodcutters] = 5
	s.Labor.Roles[RoleStoneWorkers] = 3
	s.Labor.Idle = 22
	return s
}

// Consistent reports whether every settler is accounted for exactly once.
func (s State) Consistent() bool {
	if s.Population < 0 || s.Labor.Idle < 0 {
		return false
	}
	for _, n := range s.Labor.Roles {
		if n < 0 {
			return false
		}
	}
	return s.Labor.Total() == s.Population
}

// AllocateLabor sets a role's headcount, drawing from or returning to idle.
// It returns s unchanged and false if s is already inconsistent, the role is
// not assignable, n is negative, or idle would go negative.
func (s State) AllocateLabor(role Role, n int) (State, bool) {
	if !s.Consistent() || !role.Assignable() || n < 0 {
		return s, false
	}
	idle := s.Labor.Idle + s.Labor.Roles[role] - n
	if idle < 0 {
		return s, false
	}
	s.Labor.Roles[role] = n
	s.Labor.Idle = idle
	return s, true
}

// Dispatch moves n idle settlers to explorers.
func (s State) Dispatch(n int) (State, bool) {
	if n <= 0 || s.Labor.Idle < n {
		return s, false
	}
	s.Labor.Idle -= n
	s.Labor.Roles[RoleExplorers] += n
	return s, true
}

// Return moves n explorers back to idle.
func (s State) Return(n int) State {
	n = min(n, s.Labor.Roles[RoleExplorers])
	s.Labor.Roles[RoleExplorers] -= n
	s.Labor.Idle += n
	return s
}

// Lose removes n explorers from the colony for good.
func (s State) Lose(n int) State {
	n = min(n, s.Labor.Roles[RoleExplorers])
	s.Labor.Roles[RoleExplorers] -= n
	s.Population -= n
	return s
}

// ClampHappiness bounds h to [HappinessMin, HappinessMax].
func ClampHappiness(h float64) float64 {
	return max(HappinessMin, min(HappinessMax, h))
}
