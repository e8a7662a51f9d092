// Package featureflags evaluates runtime feature flags parsed from a
// comma-separated config string, e.g. "video_uploads=off,new_feed=25%".
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

type mode int

const (
	modeOn mode = iota
	modeOff
	modePercent
)

type rule struct {
	mode mode
	pct  int
}

// Manager answers flag queries. Flags are parsed once at construction;
// malformed entries are dropped.
type Manager struct {
	rules map[string]rule
}

// NewManager parses a comma-separated "name=value" list. Values are
// on/true/1, off/false/0, or "N%" for a deterministic per-user rollout.
func NewManager(raw string) *Manager {
	rules := make(map[string]rule)
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		name = normalize(name)
		if name == "" {
			continue
		}
		if r, ok := parseRule(normalize(value)); ok {
			rules[name] = r
		}
	}
	return &Manager{rules: rules}
}

func parseRule(value string) (rule, bool) {
	switch value {
	case "on", "true", "1":
		return rule{mode: modeOn}, true
	case "off", "false", "0":
		return rule{mode: modeOff}, true
	}
	pctRaw, ok := strings.CutSuffix(value, "%")
	if !ok {
		return rule{}, false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct < 0 || pct > 100 {
		return rule{}, false
	}
	return rule{mode: modePercent, pct: pct}, true
}

// Enabled reports whether the flag is on for the user. Flags that were
// never configured fall back to def, so features default on and kill
// switches need an explicit "off" entry.
func (m *Manager) Enabled(name string, userID uint, def bool) bool {
	if m == nil {
		return def
	}
	r, ok := m.rules[normalize(name)]
	if !ok {
		return def
	}
	switch r.mode {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	if r.pct >= 100 {
		return true
	}
	if r.pct <= 0 || userID == 0 {
		return false
	}
	return rolloutBucket(name, userID) < r.pct
}

// Snapshot returns the evaluated state of every configured flag for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.rules))
	for name := range m.rules {
		out[name] = m.Enabled(name, userID, false)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// rolloutBucket maps (flag, user) to a stable bucket in [0, 100) so a
// percentage rollout always includes the same users.
func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	h.Write([]byte(normalize(name)))
	h.Write([]byte{':'})
	h.Write([]byte(strconv.FormatUint(uint64(userID), 10)))
	return int(h.Sum32() % 100)
}
