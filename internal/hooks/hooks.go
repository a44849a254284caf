// Package hooks mutates the host's settings.json hook registrations.
//
// All transforms are text to text: documents pass through gjson/sjson so
// that unrelated settings content survives byte-for-byte. A hook owned by
// this tool is identified by its script filename appearing in the entry's
// command field, never by position, so presence checks stay correct when
// users reorder matchers or add their own hooks alongside ours.
package hooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Slot is one hook registration: a host lifecycle event bound to one of
// our scripts. The script filename doubles as the slot's marker.
type Slot struct {
	Event   string
	Script  string
	Timeout int
}

// MemorySlots are the three memory-lifecycle registrations. Install,
// detect and remove all derive from this table so the three cannot drift.
var MemorySlots = []Slot{
	{Event: "Stop", Script: "memory-capture.sh", Timeout: 60},
	{Event: "SessionStart", Script: "memory-load.sh", Timeout: 10},
	{Event: "PreCompact", Script: "memory-compact.sh", Timeout: 60},
}

// ContextSlot is the prompt-submission registration.
var ContextSlot = Slot{Event: "UserPromptSubmit", Script: "inject-context.sh", Timeout: 10}

// ParseError reports malformed settings JSON. It is surfaced to the
// caller; nothing in this package attempts recovery.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed settings JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Command returns the command string registered for this slot under the
// given install directory.
func (s Slot) Command(installDir string) string {
	return filepath.Join(installDir, "scripts", "hooks", s.Script)
}

// normalize validates the settings document and substitutes an empty
// object for absent or blank input.
func normalize(settings string) (string, error) {
	if strings.TrimSpace(settings) == "" {
		return "{}", nil
	}
	if !gjson.Valid(settings) {
		return "", &ParseError{Err: errors.New("invalid JSON")}
	}
	if !gjson.Parse(settings).IsObject() {
		return "", &ParseError{Err: errors.New("top-level value is not an object")}
	}
	return settings, nil
}

// slotPresent reports whether any matcher under the slot's event carries
// a hook whose command contains the slot marker.
func slotPresent(doc string, s Slot) bool {
	for _, matcher := range gjson.Get(doc, "hooks."+s.Event).Array() {
		for _, h := range matcher.Get("hooks").Array() {
			if strings.Contains(h.Get("command").String(), s.Script) {
				return true
			}
		}
	}
	return false
}

// format pretty-prints a document with 2-space indentation and a single
// trailing newline, matching how the host writes its own settings.
func format(doc string) string {
	out := pretty.PrettyOptions([]byte(doc), &pretty.Options{Indent: "  "})
	return strings.TrimRight(string(out), "\n") + "\n"
}

// addSlots appends a matcher for every missing slot. When every slot is
// already present the input is returned untouched, so callers can skip
// the write entirely.
func addSlots(settings, installDir string, slots []Slot) (string, error) {
	doc, err := normalize(settings)
	if err != nil {
		return "", err
	}

	changed := false
	for _, s := range slots {
		if slotPresent(doc, s) {
			continue
		}
		matcher := map[string]any{
			"hooks": []any{
				map[string]any{
					"type":    "command",
					"command": s.Command(installDir),
					"timeout": s.Timeout,
				},
			},
		}
		raw, merr := json.Marshal(matcher)
		if merr != nil {
			return "", merr
		}
		doc, err = sjson.SetRaw(doc, "hooks."+s.Event+".-1", string(raw))
		if err != nil {
			return "", err
		}
		changed = true
	}

	if !changed {
		return settings, nil
	}
	return format(doc), nil
}

// removeSlots filters out every matcher all of whose hooks carry a slot
// marker, then drops event keys our deletions emptied and the hooks
// object itself once it holds nothing. Returns the input untouched when
// no slot matched.
func removeSlots(settings string, slots []Slot) (string, error) {
	doc, err := normalize(settings)
	if err != nil {
		return "", err
	}

	changed := false
	for _, s := range slots {
		eventPath := "hooks." + s.Event
		matchers := gjson.Get(doc, eventPath)
		if !matchers.Exists() {
			continue
		}

		var del []int
		for i, m := range matchers.Array() {
			entries := m.Get("hooks").Array()
			if len(entries) == 0 {
				continue
			}
			ours := true
			for _, h := range entries {
				if !strings.Contains(h.Get("command").String(), s.Script) {
					ours = false
					break
				}
			}
			if ours {
				del = append(del, i)
			}
		}
		if len(del) == 0 {
			continue
		}

		for j := len(del) - 1; j >= 0; j-- {
			doc, err = sjson.Delete(doc, fmt.Sprintf("%s.%d", eventPath, del[j]))
			if err != nil {
				return "", err
			}
		}
		changed = true

		// Drop the event key only when our deletions emptied it.
		if gjson.Get(doc, eventPath+".#").Int() == 0 {
			doc, err = sjson.Delete(doc, eventPath)
			if err != nil {
				return "", err
			}
		}
	}

	if !changed {
		return settings, nil
	}

	hooksObj := gjson.Get(doc, "hooks")
	if hooksObj.Exists() && hooksObj.IsObject() && len(hooksObj.Map()) == 0 {
		doc, err = sjson.Delete(doc, "hooks")
		if err != nil {
			return "", err
		}
	}
	return format(doc), nil
}

// countSlots returns how many of the given slots are present.
func countSlots(settings string, slots []Slot) (int, error) {
	doc, err := normalize(settings)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range slots {
		if slotPresent(doc, s) {
			n++
		}
	}
	return n, nil
}

// AddMemoryHooks registers the memory-lifecycle hooks that are not yet
// present. Already-registered slots are left exactly as found, so a
// partially applied earlier run heals instead of duplicating.
func AddMemoryHooks(settings, installDir string) (string, error) {
	return addSlots(settings, installDir, MemorySlots)
}

// RemoveMemoryHooks unregisters all memory-lifecycle hooks.
func RemoveMemoryHooks(settings string) (string, error) {
	return removeSlots(settings, MemorySlots)
}

// HasMemoryHooks reports whether every memory slot is registered.
func HasMemoryHooks(settings string) (bool, error) {
	n, err := countSlots(settings, MemorySlots)
	if err != nil {
		return false, err
	}
	return n == len(MemorySlots), nil
}

// CountMemoryHooks returns how many of the memory slots are registered.
func CountMemoryHooks(settings string) (int, error) {
	return countSlots(settings, MemorySlots)
}

// AddContextHook registers the prompt-submission context hook.
func AddContextHook(settings, installDir string) (string, error) {
	return addSlots(settings, installDir, []Slot{ContextSlot})
}

// RemoveContextHook unregisters the prompt-submission context hook.
func RemoveContextHook(settings string) (string, error) {
	return removeSlots(settings, []Slot{ContextSlot})
}

// HasContextHook reports whether the context hook is registered.
func HasContextHook(settings string) (bool, error) {
	n, err := countSlots(settings, []Slot{ContextSlot})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
