package stats

import (
	"encoding/json"
	"fmt"
)

// The stats endpoint emits aggregation rows as ["Chrome", 12] pairs.

func (n *NameCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("expected [name, count] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &n.Name); err != nil {
		return fmt.Errorf("pair name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &n.Count); err != nil {
		return fmt.Errorf("pair count: %w", err)
	}
	return nil
}

func (n NameCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{n.Name, n.Count})
}
