// Package turnlog records one line per decided turn into a zstd-compressed
// JSONL file and reads it back for reporting.
package turnlog

// TurnRecord is what the agent knew and did on one turn.
type TurnRecord struct {
	Turn           int      `json:"turn"`
	Bank           int      `json:"bank"`
	Ships          int      `json:"ships"`
	Returning      int      `json:"returning"`
	Recalled       int      `json:"recalled,omitempty"`
	Moves          int      `json:"moves"`
	Stays          int      `json:"stays"`
	Builds         int      `json:"builds"`
	Spawned        bool     `json:"spawned"`
	SpawnBlockedBy string   `json:"spawn_blocked_by,omitempty"`
	ElapsedMs      float64  `json:"elapsed_ms"`
	Events         []string `json:"events,omitempty"`
	Commands       string   `json:"commands,omitempty"`
}
