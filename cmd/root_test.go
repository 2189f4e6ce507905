package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billing-assistant/internal/config"
	"github.com/sells-group/billing-assistant/internal/model"
)

// execute runs the root command in a temp dir so no config.yaml is found.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "ask", "search", "classify"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "billing-assistant", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestAskCommand_Flags(t *testing.T) {
	flag := askCmd.Flags().Lookup("category")
	require.NotNil(t, flag, "ask command should have --category flag")
	assert.Equal(t, "General Healthcare Knowledge", flag.DefValue)
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "CPT codes for an echocardiogram in cardiology")
	require.NoError(t, err)

	var sp model.Specialty
	require.NoError(t, json.Unmarshal([]byte(out), &sp))
	assert.Equal(t, "cardiology", sp.Key)
}

func TestClassifyCommand_NoMatch(t *testing.T) {
	out, err := execute(t, "classify", "what is rcm")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestClassifyCommand_RequiresArg(t *testing.T) {
	_, err := execute(t, "classify")
	assert.Error(t, err)
}

// newSiteServer serves a search results page and an Ollama generate endpoint.
func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"RCM covers the claim lifecycle. ### Want to know about denials?"}`))
	})
	var srv *httptest.Server
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
<article><h2><a href="` + srv.URL + `/denial-guide/">Denial guide</a></h2>
<p class="excerpt">A practical guide to working denied claims.</p></article>
<article><h2><a href="/appeals/">Appeals</a></h2></article>
</body></html>`))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("ASSISTANT_SITE_BASE_URL", srv.URL)
	t.Setenv("ASSISTANT_SITE_DOMAIN", "127.0.0.1")
	t.Setenv("ASSISTANT_OLLAMA_BASE_URL", srv.URL)
	t.Setenv("ASSISTANT_LOG_LEVEL", "error")
	return srv
}

func TestSearchCommand(t *testing.T) {
	srv := newSiteServer(t)

	out, err := execute(t, "search", "how", "to", "reduce", "claim", "denials")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Nil(t, got.Specialty)
	assert.Equal(t, srv.URL+"/denial-guide/", got.Result.PrimaryURL)
	assert.Equal(t, []string{srv.URL + "/appeals/"}, got.Result.AdditionalURLs)
	assert.Contains(t, got.Result.Content, "denied claims")
}

func TestAskCommand(t *testing.T) {
	srv := newSiteServer(t)

	out, err := execute(t, "ask", "what is rcm")
	require.NoError(t, err)

	var got model.GeneratedAnswer
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "RCM covers the claim lifecycle. ### Want to know about denials?", got.Text)
	assert.Equal(t, srv.URL+"/denial-guide/", got.SourceURL)
}

func TestInitEnv_OpensStore(t *testing.T) {
	c := testConfig()
	c.Store.Driver = "sqlite"
	c.Store.DatabaseURL = filepath.Join(t.TempDir(), "env.db")

	env, err := initEnv(context.Background(), c, "serve", true)
	require.NoError(t, err)
	t.Cleanup(env.Close)

	require.NotNil(t, env.Store)
	u, err := env.Store.SaveUserEmail(context.Background(), "coder@clinic.org")
	require.NoError(t, err)
	assert.Equal(t, "coder", u.Name)
}

func TestInitEnv_NoStore(t *testing.T) {
	c := testConfig()
	c.Store.Driver = "none"

	env, err := initEnv(context.Background(), c, "serve", true)
	require.NoError(t, err)
	assert.Nil(t, env.Store)
}

func TestInitEnv_InvalidConfig(t *testing.T) {
	c := testConfig()
	c.Generation.Backend = "anthropic"

	_, err := initEnv(context.Background(), c, "ask", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")
}

func TestInitEnv_BadSpecialtyFile(t *testing.T) {
	c := testConfig()
	c.Specialties.File = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := initEnv(context.Background(), c, "classify", false)
	assert.Error(t, err)
}

func TestNewGenerator_Backends(t *testing.T) {
	c := testConfig()

	g, err := newGenerator(c)
	require.NoError(t, err)
	assert.Equal(t, "ollama", g.Name())

	c.Generation.Backend = "anthropic"
	c.Anthropic.Key = "sk-ant-test"
	g, err = newGenerator(c)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", g.Name())

	c.Generation.Backend = "gpt"
	_, err = newGenerator(c)
	assert.Error(t, err)
}

func TestRunServer_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.Site.BaseURL = "https://www.billingparadise.com"
	c.Site.TimeoutSecs = 10
	c.Generation.Backend = "ollama"
	c.Generation.TimeoutSecs = 60
	c.Ollama.BaseURL = "http://localhost:11434"
	c.Ollama.Model = "qwen:0.5b"
	c.Assistant.HistoryLimit = 10
	c.Server.Port = 3001
	return c
}
