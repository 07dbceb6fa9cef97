package economy

import "fmt"

// Role is a labor assignment.
type Role uint8

const (
	RoleGatherers Role = iota
	RoleHunters
	RoleFarmers
	RoleWoodcutters
	RoleStoneWorkers
	RoleExplorers // Away on expeditions; not directly assignable
)

// NumRoles is the size of the closed role set.
const NumRoles = 6

var roleNames = [NumRoles]string{
	"gatherers", "hunters", "farmers", "woodcutters", "stone_workers", "explorers",
}

// RoleName returns the snake_case name of a role.
func RoleName(r Role) string {
	if int(r) < NumRoles {
		return roleNames[r]
	}
	return "unknown"
}

func (r Role) String() string { return RoleName(r) }

// ParseRole is the inverse of RoleName.
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

func (r Role) MarshalText() ([]byte, error) { return []byte(RoleName(r)), nil }

func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Assignable reports whether the player may set this role's headcount.
// Explorers only change through expeditions.
func (r Role) Assignable() bool { return r < RoleExplorers }

// Labor holds headcount per role plus the unassigned remainder.
type Labor struct {
	Roles [NumRoles]int `json:"roles"`
	Idle  int           `json:"idle"`
}

// Total is every settler accounted for, including idle and explorers.
func (l Labor) Total() int {
	n := l.Idle
	for _, c := range l.Roles {
		n += c
	}
	return n
}

// Map returns headcount keyed by role name, idle included.
func (l Labor) Map() map[string]int {
	out := make(map[string]int, NumRoles+1)
	for i, n := range l.Roles {
		out[roleNames[i]] = n
	}
	out["idle"] = l.Idle
	return out
}
