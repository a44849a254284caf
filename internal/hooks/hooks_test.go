package hooks_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/devflow-sh/devflow/internal/hooks"
)

const installDir = "/home/u/.devflow"

func TestAddMemoryHooksFromEmpty(t *testing.T) {
	tests := []struct {
		name     string
		settings string
	}{
		{name: "empty_object", settings: "{}"},
		{name: "blank_input", settings: ""},
		{name: "whitespace_input", settings: "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := hooks.AddMemoryHooks(tt.settings, installDir)
			require.NoError(t, err)

			for _, slot := range hooks.MemorySlots {
				matchers := gjson.Get(out, "hooks."+slot.Event)
				require.True(t, matchers.IsArray(), "event %s missing", slot.Event)
				require.Len(t, matchers.Array(), 1, "event %s", slot.Event)

				entry := matchers.Array()[0].Get("hooks").Array()
				require.Len(t, entry, 1)
				assert.Equal(t, "command", entry[0].Get("type").String())
				assert.Equal(t, slot.Command(installDir), entry[0].Get("command").String())
				assert.Equal(t, int64(slot.Timeout), entry[0].Get("timeout").Int())
			}
			assert.True(t, strings.HasSuffix(out, "\n"))
		})
	}
}

func TestAddMemoryHooksIdempotent(t *testing.T) {
	once, err := hooks.AddMemoryHooks("{}", installDir)
	require.NoError(t, err)

	twice, err := hooks.AddMemoryHooks(once, installDir)
	require.NoError(t, err)

	// A no-op add hands back the input untouched so callers skip the write.
	assert.Equal(t, once, twice)
}

func TestAddMemoryHooksHealsPartialState(t *testing.T) {
	partial := `{
  "hooks": {
    "Stop": [
      {"hooks": [{"type": "command", "command": "/custom/path/memory-capture.sh", "timeout": 120}]}
    ],
    "SessionStart": [
      {"hooks": [{"type": "command", "command": "` + hooks.MemorySlots[1].Command(installDir) + `", "timeout": 10}]}
    ]
  }
}`

	out, err := hooks.AddMemoryHooks(partial, installDir)
	require.NoError(t, err)

	// Only the missing PreCompact slot is added; the two present slots
	// keep their original entries even when the path differs from ours.
	assert.Len(t, gjson.Get(out, "hooks.Stop").Array(), 1)
	assert.Equal(t, "/custom/path/memory-capture.sh",
		gjson.Get(out, "hooks.Stop.0.hooks.0.command").String())
	assert.Equal(t, int64(120), gjson.Get(out, "hooks.Stop.0.hooks.0.timeout").Int())

	assert.Len(t, gjson.Get(out, "hooks.SessionStart").Array(), 1)
	assert.Len(t, gjson.Get(out, "hooks.PreCompact").Array(), 1)

	n, err := hooks.CountMemoryHooks(out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAddMemoryHooksPreservesForeignContent(t *testing.T) {
	settings := `{
  "model": "opus",
  "permissions": {"allow": ["Bash(ls:*)"]},
  "hooks": {
    "Stop": [
      {"hooks": [{"type": "command", "command": "/usr/local/bin/notify.sh"}]}
    ]
  }
}`

	out, err := hooks.AddMemoryHooks(settings, installDir)
	require.NoError(t, err)

	assert.Equal(t, "opus", gjson.Get(out, "model").String())
	assert.Equal(t, "Bash(ls:*)", gjson.Get(out, "permissions.allow.0").String())

	// The foreign Stop matcher stays first; ours is appended after it.
	stop := gjson.Get(out, "hooks.Stop").Array()
	require.Len(t, stop, 2)
	assert.Equal(t, "/usr/local/bin/notify.sh", stop[0].Get("hooks.0.command").String())
	assert.Contains(t, stop[1].Get("hooks.0.command").String(), "memory-capture.sh")
}

func TestRemoveMemoryHooksRoundTrip(t *testing.T) {
	added, err := hooks.AddMemoryHooks("{}", installDir)
	require.NoError(t, err)

	removed, err := hooks.RemoveMemoryHooks(added)
	require.NoError(t, err)

	assert.False(t, gjson.Get(removed, "hooks").Exists())
	assert.Equal(t, "{}", strings.TrimSpace(removed))
}

func TestRemoveMemoryHooksKeepsForeignMatchers(t *testing.T) {
	settings := `{
  "model": "opus",
  "hooks": {
    "Stop": [
      {"hooks": [{"type": "command", "command": "/usr/local/bin/notify.sh"}]}
    ]
  }
}`
	added, err := hooks.AddMemoryHooks(settings, installDir)
	require.NoError(t, err)

	removed, err := hooks.RemoveMemoryHooks(added)
	require.NoError(t, err)

	// The foreign Stop matcher survives, so the event key must too.
	stop := gjson.Get(removed, "hooks.Stop").Array()
	require.Len(t, stop, 1)
	assert.Equal(t, "/usr/local/bin/notify.sh", stop[0].Get("hooks.0.command").String())
	assert.False(t, gjson.Get(removed, "hooks.SessionStart").Exists())
	assert.False(t, gjson.Get(removed, "hooks.PreCompact").Exists())
	assert.Equal(t, "opus", gjson.Get(removed, "model").String())
}

func TestRemoveMemoryHooksSkipsMixedMatchers(t *testing.T) {
	// A matcher carrying one of our hooks next to a foreign one was
	// merged by the user; removing it would destroy their entry.
	settings := `{
  "hooks": {
    "Stop": [
      {"hooks": [
        {"type": "command", "command": "` + hooks.MemorySlots[0].Command(installDir) + `"},
        {"type": "command", "command": "/usr/local/bin/notify.sh"}
      ]}
    ]
  }
}`

	out, err := hooks.RemoveMemoryHooks(settings)
	require.NoError(t, err)
	assert.Equal(t, settings, out)
}

func TestRemoveMemoryHooksNoOp(t *testing.T) {
	tests := []struct {
		name     string
		settings string
	}{
		{name: "empty_object", settings: "{}"},
		{name: "no_hooks_key", settings: `{"model": "opus"}`},
		{name: "preexisting_empty_event", settings: `{"hooks": {"Stop": []}}`},
		{name: "foreign_hooks_only", settings: `{"hooks": {"Stop": [{"hooks": [{"command": "/bin/other.sh"}]}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := hooks.RemoveMemoryHooks(tt.settings)
			require.NoError(t, err)
			assert.Equal(t, tt.settings, out)
		})
	}
}

func TestCountMemoryHooks(t *testing.T) {
	n, err := hooks.CountMemoryHooks("{}")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	added, err := hooks.AddMemoryHooks("{}", installDir)
	require.NoError(t, err)

	n, err = hooks.CountMemoryHooks(added)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	enabled, err := hooks.HasMemoryHooks(added)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestContextHookLifecycle(t *testing.T) {
	has, err := hooks.HasContextHook("{}")
	require.NoError(t, err)
	assert.False(t, has)

	added, err := hooks.AddContextHook("{}", installDir)
	require.NoError(t, err)

	matchers := gjson.Get(added, "hooks.UserPromptSubmit").Array()
	require.Len(t, matchers, 1)
	assert.Equal(t, hooks.ContextSlot.Command(installDir),
		matchers[0].Get("hooks.0.command").String())
	assert.Equal(t, int64(10), matchers[0].Get("hooks.0.timeout").Int())

	has, err = hooks.HasContextHook(added)
	require.NoError(t, err)
	assert.True(t, has)

	removed, err := hooks.RemoveContextHook(added)
	require.NoError(t, err)
	assert.False(t, gjson.Get(removed, "hooks").Exists())
}

func TestContextAndMemoryHooksCoexist(t *testing.T) {
	doc, err := hooks.AddMemoryHooks("{}", installDir)
	require.NoError(t, err)
	doc, err = hooks.AddContextHook(doc, installDir)
	require.NoError(t, err)

	// Disabling one family must not disturb the other.
	doc, err = hooks.RemoveMemoryHooks(doc)
	require.NoError(t, err)

	has, err := hooks.HasContextHook(doc)
	require.NoError(t, err)
	assert.True(t, has)

	n, err := hooks.CountMemoryHooks(doc)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMalformedSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings string
	}{
		{name: "truncated", settings: `{"hooks": `},
		{name: "not_an_object", settings: `[1, 2, 3]`},
		{name: "bare_string", settings: `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hooks.AddMemoryHooks(tt.settings, installDir)
			var perr *hooks.ParseError
			require.Error(t, err)
			assert.True(t, errors.As(err, &perr))

			_, err = hooks.RemoveMemoryHooks(tt.settings)
			require.Error(t, err)
			assert.True(t, errors.As(err, &perr))
		})
	}
}
