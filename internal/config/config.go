// Package config holds the shared server configuration: the workspace root
// and the ordered list of partial search directories. Directories are sourced
// exclusively from the client's initializationOptions; there is no on-disk
// configuration file.
package config

import (
	"encoding/json"
	"slices"
	"sync"
)

// Values is one consistent view of the configuration. WorkspaceRoot is an
// absolute path, empty until initialize has delivered a usable root URI.
// PartialsDirs are relative to the root; their order is the resolution
// precedence.
type Values struct {
	WorkspaceRoot string
	PartialsDirs  []string
}

// State is the single mutable configuration record shared by all request
// handlers.
type State struct {
	mu     sync.Mutex
	values Values
}

func NewState() *State {
	return &State{}
}

// Initialize replaces both fields. Last write wins; there are no merge
// semantics.
func (s *State) Initialize(root string, dirs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = Values{
		WorkspaceRoot: root,
		PartialsDirs:  slices.Clone(dirs),
	}
}

// Snapshot returns a point-in-time copy, so a resolution call runs against
// one consistent view even if a concurrent re-initialization lands mid-call.
func (s *State) Snapshot() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values
	v.PartialsDirs = slices.Clone(v.PartialsDirs)
	return v
}

// PartialDirs extracts the `partials_dir` entry from the client's
// initializationOptions payload. The entry may be a single string or an
// array of strings; non-string array members are dropped, and any other
// shape yields nil.
func PartialDirs(options any) []string {
	data, err := json.Marshal(options)
	if err != nil {
		return nil
	}
	var opts struct {
		PartialsDir json.RawMessage `json:"partials_dir"`
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil
	}
	if len(opts.PartialsDir) == 0 {
		return nil
	}

	var single string
	if err := json.Unmarshal(opts.PartialsDir, &single); err == nil {
		return []string{single}
	}

	var many []any
	if err := json.Unmarshal(opts.PartialsDir, &many); err != nil {
		return nil
	}
	var dirs []string
	for _, v := range many {
		if s, ok := v.(string); ok {
			dirs = append(dirs, s)
		}
	}
	return dirs
}
