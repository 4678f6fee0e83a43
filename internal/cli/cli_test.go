package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const legacyDoc = `{
  "lists": [
    {
      "id": "cams",
      "name": "Cameras",
      "category": "Photo",
      "createdAt": "2024-01-02T03:04:05Z",
      "items": [
        {"id": "m3", "name": "Leica M3", "purchasePrice": 900, "currentValue": 1200,
         "createdAt": "2024-01-02T03:04:05Z", "properties": {"year": 1954, "mount": "M"}}
      ],
      "sublists": [
        {"id": "lenses", "name": "Lenses", "createdAt": "2024-01-02T03:04:05Z",
         "items": [{"id": "l1", "name": "Summicron", "purchasePrice": 300, "currentValue": null,
                    "createdAt": "2024-01-02T03:04:05Z"}],
         "sublists": []}
      ]
    }
  ],
  "sortOptions": {"listSortMode": "name", "listSortAsc": true}
}`

// runCLI executes the root command against a private config directory.
func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func importFixture(t *testing.T, dir string, extra ...string) {
	t.Helper()
	src := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(src, []byte(legacyDoc), 0o644))

	out, _, err := runCLI(t, dir, append(extra, "import", src)...)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 lists")
}

func TestImportThenTree(t *testing.T) {
	dir := t.TempDir()
	importFixture(t, dir)

	out, _, err := runCLI(t, dir, "tree", "--totals")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Cameras [Photo]  (cams)")
	assert.Contains(t, lines[0], "paid €1,200.00, worth €1,200.00")
	assert.Contains(t, lines[1], "  Lenses  (lenses)")
	assert.Contains(t, lines[2], "- Summicron")
	assert.Contains(t, lines[3], "- Leica M3")
}

func TestTotals(t *testing.T) {
	dir := t.TempDir()
	importFixture(t, dir)

	out, _, err := runCLI(t, dir, "totals", "cams")
	require.NoError(t, err)
	assert.Contains(t, out, "items:          2")
	assert.Contains(t, out, "profit:         €0.00")

	out, _, err = runCLI(t, dir, "totals", "lenses")
	require.NoError(t, err)
	assert.Contains(t, out, "current value:  -")
	assert.Contains(t, out, "profit:         -")

	_, _, err = runCLI(t, dir, "totals", "nope")
	assert.ErrorContains(t, err, "list not found: nope")
}

func TestExportJSONWritesCurrentShape(t *testing.T) {
	dir := t.TempDir()
	importFixture(t, dir)

	out, _, err := runCLI(t, dir, "export")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "viewState")
	assert.NotContains(t, doc, "sortOptions")
	assert.Less(t, strings.Index(out, `"year"`), strings.Index(out, `"mount"`))
}

func TestExportYAML(t *testing.T) {
	dir := t.TempDir()
	importFixture(t, dir)

	out, _, err := runCLI(t, dir, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lists:\n"))

	var doc struct {
		Lists []struct {
			Name     string `yaml:"name"`
			Sublists []struct {
				Items []struct {
					CurrentValue *float64 `yaml:"currentValue"`
				} `yaml:"items"`
			} `yaml:"sublists"`
		} `yaml:"lists"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Lists, 1)
	assert.Equal(t, "Cameras", doc.Lists[0].Name)
	assert.Nil(t, doc.Lists[0].Sublists[0].Items[0].CurrentValue)

	_, _, err = runCLI(t, dir, "export", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestSQLiteBackendFlag(t *testing.T) {
	dir := t.TempDir()
	importFixture(t, dir, "--backend", "sqlite")

	_, err := os.Stat(filepath.Join(dir, "sortbase", "inventory.db"))
	require.NoError(t, err)

	out, _, err := runCLI(t, dir, "--backend", "sqlite", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Cameras")

	out, _, err = runCLI(t, dir, "tree")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestDataFlagAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "elsewhere.json")
	importFixture(t, dir, "--data", data)

	_, err := os.Stat(data)
	require.NoError(t, err)

	cfg := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("storage:\n  path: "+data+"\ndisplay:\n  currency: \"$\"\n"), 0o644))

	out, _, err := runCLI(t, dir, "--config", cfg, "totals", "cams")
	require.NoError(t, err)
	assert.Contains(t, out, "$1,200.00")
}

func TestImportRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(src, []byte("{not json"), 0o644))

	_, _, err := runCLI(t, dir, "import", src)
	assert.Error(t, err)
}

func TestJSONToYAMLKeepsKeyOrder(t *testing.T) {
	out, err := jsonToYAML([]byte(`{"b": 1, "a": "2", "c": [true, null]}`))
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "a: \"2\"")
	assert.Contains(t, s, "- null")
	assert.Less(t, strings.Index(s, "b:"), strings.Index(s, "a:"))
	assert.Less(t, strings.Index(s, "a:"), strings.Index(s, "c:"))
}

func TestConfigWriteThenShow(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "--backend", "sqlite", "config", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "sortbase", "config.yaml"))

	out, _, err = runCLI(t, dir, "config")
	require.NoError(t, err)

	var shown struct {
		Storage struct {
			Backend string `yaml:"backend"`
		} `yaml:"storage"`
		Display struct {
			Currency string `yaml:"currency"`
		} `yaml:"display"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "sqlite", shown.Storage.Backend)
	assert.Equal(t, "€", shown.Display.Currency)
}
