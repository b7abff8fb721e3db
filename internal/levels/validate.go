package levels

import (
	"errors"
	"fmt"
)

var errMissingDefault = errors.New("literacy tables must include a \"default\" bank")

func errEmpty(name string) error {
	return fmt.Errorf("table %q is empty", name)
}

func validateEntries(name string, entries []Entry) error {
	if len(entries) == 0 {
		return errEmpty(name)
	}
	if entries[0].Min != 0 {
		return fmt.Errorf("table %q must start at threshold 0, got %d", name, entries[0].Min)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Min <= entries[i-1].Min {
			return fmt.Errorf("table %q thresholds not ascending at index %d", name, i)
		}
	}
	for i, e := range entries {
		if e.Label == "" {
			return fmt.Errorf("table %q has empty label at index %d", name, i)
		}
	}
	return nil
}
