package plan

import (
	"fmt"

	"ratebridge/internal/fileutil"
)

// Write persists the plan as indented JSON via an atomic replace, so an
// interrupted write never leaves a truncated plan behind.
func Write(path string, p *Plan) error {
	if err := fileutil.WriteJSONAtomic(path, p); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// Load reads a previously written plan.
func Load(path string) (*Plan, error) {
	var p Plan
	if err := fileutil.ReadJSON(path, &p); err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	return &p, nil
}
