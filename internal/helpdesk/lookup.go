package helpdesk

import (
	"encoding/json"
	"fmt"
	"os"
)

// Lookup maps reference names to IDs and IDs back to names in one flat
// map, matching the cache files on disk. Names and IDs share the key
// space: if a name ever equaled some other entry's ID the two would
// collide silently. The vendor account has no such overlap today.
type Lookup map[string]string

func buildLookup(byName map[string]string) Lookup {
	l := make(Lookup, len(byName)*2)
	for name, id := range byName {
		l[name] = id
	}
	for name, id := range byName {
		l[id] = name
	}

	return l
}

func (l Lookup) Contains(key string) bool {
	_, ok := l[key]
	return ok
}

func (l Lookup) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling lookup: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing lookup file: %w", err)
	}

	return nil
}

func LoadLookup(path string) (Lookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lookup file: %w", err)
	}

	var l Lookup
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshaling lookup file: %w", err)
	}

	return l, nil
}
