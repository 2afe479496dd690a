package cmd

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/hubview/internal/errors"
	"github.com/Iron-Ham/hubview/internal/fixture"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// setupTestEnvironment points config and state lookups at fresh temp dirs and
// clears viper state between commands.
func setupTestEnvironment(t *testing.T) (configDir string) {
	t.Helper()

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	viper.Reset()
	t.Cleanup(viper.Reset)

	return filepath.Join(configHome, "hubview")
}

func fixtureURL(t *testing.T) string {
	t.Helper()
	s, err := fixture.New()
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv.URL + fixture.HubPath
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "hubview" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "hubview")
	}

	expectedCmds := []string{"browse", "dump", "serve", "config"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}

	for _, name := range []string{"url", "theme"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("root command missing --%s", name)
		}
	}
}

func TestDumpJSON(t *testing.T) {
	setupTestEnvironment(t)
	url := fixtureURL(t)

	output, err := executeCommand(rootCmd, "dump", "--url", url, "--format", "json")
	if err != nil {
		t.Fatalf("dump failed: %v\n%s", err, output)
	}

	var got dumpOutput
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}

	if got.Hub != url {
		t.Errorf("hub = %q, want %q", got.Hub, url)
	}
	if got.Shape != "grid[4 8 6 3]" {
		t.Errorf("shape = %q, want grid[4 8 6 3]", got.Shape)
	}

	wantRows := []struct {
		index int
		name  string
	}{
		{0, "Featured"},
		{1, "Popular Movies"},
		{4, "TV Shows"},
		{5, "Kids"},
	}
	if len(got.Rows) != len(wantRows) {
		t.Fatalf("got %d rows, want %d", len(got.Rows), len(wantRows))
	}
	for i, want := range wantRows {
		if got.Rows[i].Index != want.index || got.Rows[i].Name != want.name {
			t.Errorf("row %d = (%d, %q), want (%d, %q)", i, got.Rows[i].Index, got.Rows[i].Name, want.index, want.name)
		}
	}

	first := got.Rows[0].Tiles[0]
	if first.ID != "the-lighthouse-keeper-000" || first.Headline != "The Lighthouse Keeper" {
		t.Errorf("first tile = %+v", first)
	}
	if !strings.HasSuffix(first.Artwork, "&size=400x300&format=jpeg") {
		t.Errorf("artwork = %q, want tile-sized JPEG query", first.Artwork)
	}

	wantOmitted := []dumpOmission{{Index: 2, Name: "Unavailable"}, {Index: 3, Name: "Coming Soon"}}
	if len(got.Omitted) != len(wantOmitted) {
		t.Fatalf("omitted = %+v, want %+v", got.Omitted, wantOmitted)
	}
	for i := range wantOmitted {
		if got.Omitted[i] != wantOmitted[i] {
			t.Errorf("omitted[%d] = %+v, want %+v", i, got.Omitted[i], wantOmitted[i])
		}
	}
}

func TestDumpYAML(t *testing.T) {
	setupTestEnvironment(t)
	url := fixtureURL(t)

	output, err := executeCommand(rootCmd, "dump", "--url", url, "--format", "yaml")
	if err != nil {
		t.Fatalf("dump failed: %v\n%s", err, output)
	}

	var got dumpOutput
	if err := yaml.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, output)
	}
	if got.Shape != "grid[4 8 6 3]" {
		t.Errorf("shape = %q, want grid[4 8 6 3]", got.Shape)
	}
	if len(got.Rows) != 4 || got.Rows[1].Tiles[1].Headline != "Glass Orchard" {
		t.Errorf("rows = %+v", got.Rows)
	}
}

func TestDumpInvalidFormat(t *testing.T) {
	setupTestEnvironment(t)

	_, err := executeCommand(rootCmd, "dump", "--url", "http://127.0.0.1:1/hub.json", "--format", "xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}

	var verr *errors.ValidationError
	if !stderrors.As(err, &verr) {
		t.Fatalf("error = %T, want *errors.ValidationError", err)
	}
	if verr.Field != "format" || verr.Value != "xml" {
		t.Errorf("field/value = %q/%v, want format/xml", verr.Field, verr.Value)
	}
}

func TestDumpHubUnavailable(t *testing.T) {
	setupTestEnvironment(t)

	// Nothing is listening on port 1.
	_, err := executeCommand(rootCmd, "dump", "--url", "http://127.0.0.1:1/hub.json", "--format", "json")
	if err == nil {
		t.Fatal("expected error when the hub cannot be fetched")
	}
	if !strings.Contains(err.Error(), "failed to load hub") {
		t.Errorf("error = %v, want it to mention the hub", err)
	}
}

func TestConfigInit(t *testing.T) {
	configDir := setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, output)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	data, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(output, configFile) {
		t.Errorf("output = %q, want it to name %s", output, configFile)
	}

	// The written file must load as a valid configuration.
	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("default config is not YAML: %v", err)
	}
	for _, section := range []string{"hub", "tui", "logging", "paths", "serve"} {
		if _, ok := parsed[section]; !ok {
			t.Errorf("default config missing section %q", section)
		}
	}

	viper.Reset()
	if _, err := executeCommand(rootCmd, "config", "init"); err == nil {
		t.Error("second config init should fail when the file exists")
	}
}

func TestConfigShow(t *testing.T) {
	configDir := setupTestEnvironment(t)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "tui:\n  theme: nord\n  tile_width: 30\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := executeCommand(rootCmd, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\n%s", err, output)
	}

	for _, want := range []string{"config.yaml", "theme: nord", "tile_width: 30", "user_agent: hubview"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestConfigShowInvalid(t *testing.T) {
	configDir := setupTestEnvironment(t)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "tui:\n  theme: solarized\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := executeCommand(rootCmd, "config", "show")
	if err == nil || !strings.Contains(err.Error(), "tui.theme") {
		t.Errorf("error = %v, want it to name tui.theme", err)
	}
}

func TestConfigPath(t *testing.T) {
	configDir := setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if !strings.Contains(output, filepath.Join(configDir, "config.yaml")) {
		t.Errorf("output = %q, want default config path", output)
	}
	if !strings.Contains(output, "debug.log") {
		t.Errorf("output = %q, want log file path", output)
	}
}
