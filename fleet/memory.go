package fleet

import "github.com/nstehr/colinatole/model"

// Memory gives ships persistent identity across turns: a status and, while
// mining, a remembered target. Entries live exactly as long as the ship.
type Memory struct {
	status map[int]Status
	target map[int]model.Position
}

func NewMemory() *Memory {
	return &Memory{
		status: make(map[int]Status),
		target: make(map[int]model.Position),
	}
}

// Prune forgets every ship that is not in the current fleet.
func (m *Memory) Prune(ships []model.Ship) {
	alive := make(map[int]bool, len(ships))
	for _, s := range ships {
		alive[s.ID] = true
	}
	for id := range m.status {
		if !alive[id] {
			delete(m.status, id)
		}
	}
	for id := range m.target {
		if !alive[id] {
			delete(m.target, id)
		}
	}
}

// EnsureInitialized gives a newly seen ship the default state: mining, with
// its own cell as target. Known ships are left untouched.
func (m *Memory) EnsureInitialized(ship model.Ship) {
	if _, ok := m.status[ship.ID]; !ok {
		m.status[ship.ID] = Mining
	}
	if _, ok := m.target[ship.ID]; !ok {
		m.target[ship.ID] = ship.Position
	}
}

// Status returns the remembered status. Unknown ships read as Mining.
func (m *Memory) Status(id int) Status { return m.status[id] }

func (m *Memory) SetStatus(id int, s Status) { m.status[id] = s }

// Target returns the remembered mining target and whether one exists.
func (m *Memory) Target(id int) (model.Position, bool) {
	p, ok := m.target[id]
	return p, ok
}

func (m *Memory) SetTarget(id int, p model.Position) { m.target[id] = p }

// Known reports whether the ship has been seen and not yet pruned.
func (m *Memory) Known(id int) bool {
	_, ok := m.status[id]
	return ok
}

// Len returns the number of remembered ships.
func (m *Memory) Len() int { return len(m.status) }

// Returning counts ships currently heading home.
func (m *Memory) Returning() int {
	n := 0
	for _, s := range m.status {
		if s == Returning {
			n++
		}
	}
	return n
}
