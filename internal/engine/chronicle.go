package engine

// Severity grades a chronicle entry.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Entry is one line of the colony's chronicle. Entries are only ever
// appended.
type Entry struct {
	Day      int      `json:"day"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Chronicle messages.
const (
	msgArrival        = "Your expedition has arrived. The land offers both bounty and challenge."
	msgHungry         = "Food supplies depleted. The colony goes hungry."
	msgNotEnoughIdle  = "Not enough idle workers for expedition!"
	msgDeparture      = "Expedition of %d settlers departs to explore distant lands. Expected return: Day %d."
	msgExpeditionLost = "The expedition to distant lands has gone missing. %d souls lost to the wilderness."
	msgExpeditionBack = "Expedition returns! They discovered %s and mapped their journey, revealing %d hexes. %d settlers rejoin the colony."
)

// record appends an entry. Caller holds s.mu.
func (s *Simulation) record(day int, sev Severity, msg string) {
	s.chronicle = append(s.chronicle, Entry{Day: day, Message: msg, Severity: sev})
}
