package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soyeahso/sasagent/internal/api/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// harness runs commands against a fake backend with an isolated home.
type harness struct {
	t    *testing.T
	srv  *apitest.Server
	home string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("SASAGENT_HOME", home)
	return &harness{t: t, srv: apitest.New(t), home: home}
}

func (h *harness) run(args ...string) result {
	h.t.Helper()
	return h.runAt(h.srv.URL, args...)
}

func (h *harness) runAt(url string, args ...string) result {
	h.t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--server", url, "--no-color", "--log-level", "silent"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func (h *harness) writeFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.t.TempDir(), name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	r := h.run("version")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "sasagent "))
}

func TestPing(t *testing.T) {
	h := newHarness(t)

	r := h.run("ping")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "[success] Backend reachable")

	r = h.runAt("http://127.0.0.1:1", "ping")
	assert.Error(t, r.err)
	assert.Contains(t, r.stderr, "[error] Backend unreachable")
}

func TestAgentCreateAndList(t *testing.T) {
	h := newHarness(t)

	r := h.run("agent", "create", "Helper", "-d", "Answers questions")
	require.NoError(t, r.err)
	assert.Equal(t, "1\n", r.stdout)
	assert.Contains(t, r.stderr, "Agent created successfully")

	r = h.run("agent", "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Helper")
	assert.Contains(t, r.stdout, "Answers questions")
}

func TestAgentCreateError(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail("POST", "/api/create-agent", 500, "database locked")

	r := h.run("agent", "create", "Helper")
	require.Error(t, r.err)
	assert.Equal(t, "database locked", r.err.Error())
	assert.Contains(t, r.stderr, "[error] database locked (HTTP 500)")
}

func TestAgentCreateShowsProgress(t *testing.T) {
	h := newHarness(t)
	r := h.run("agent", "create", "Helper")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "Creating agent...\n")
}

func TestChatUnreachableNamesBackend(t *testing.T) {
	h := newHarness(t)
	r := h.runAt("http://127.0.0.1:1", "chat", "--agent", "1", "hello")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "Network error")
	assert.Contains(t, r.stderr, "(backend http://127.0.0.1:1 unreachable)")
}

func TestAgentListFallsBackToDemo(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail("GET", "/api/agents", 500, "boom")

	r := h.run("agent", "list", "--json")
	require.NoError(t, r.err)
	assert.JSONEq(t, `[{"id":1,"name":"Demo Agent","description":"Test agent for development"}]`, r.stdout)
}

func TestAgentListEmpty(t *testing.T) {
	h := newHarness(t)
	r := h.run("agent", "list")
	require.NoError(t, r.err)
	assert.Equal(t, "No agents yet.\n", r.stdout)
}

func TestUploadFiltersUnsupported(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")

	notes := h.writeFile("notes.md", "# notes")
	virus := h.writeFile("virus.exe", "MZ")

	r := h.run("upload", "--agent", "1", notes, virus)
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "Skipping virus.exe")
	assert.Contains(t, r.stderr, "Uploaded notes.md")

	uploads := h.srv.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "notes.md", uploads[0].Filename)
	assert.Equal(t, "1", uploads[0].AgentID)
	assert.Equal(t, "# notes", string(uploads[0].Content))
}

func TestUploadConcurrent(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")

	var files []string
	for _, name := range []string{"a.txt", "b.txt", "c.md", "d.pdf", "e.txt"} {
		files = append(files, h.writeFile(name, name))
	}

	r := h.run(append([]string{"upload", "--agent", "1"}, files...)...)
	require.NoError(t, r.err)
	assert.Len(t, h.srv.Uploads(), 5)
}

func TestUploadOnlyUnsupported(t *testing.T) {
	h := newHarness(t)
	r := h.run("upload", "--agent", "1", h.writeFile("virus.exe", "MZ"))
	assert.ErrorContains(t, r.err, "no supported files")
	assert.Empty(t, h.srv.Uploads())
}

func TestUploadMissingFile(t *testing.T) {
	h := newHarness(t)
	r := h.run("upload", "--agent", "1", filepath.Join(t.TempDir(), "gone.md"))
	assert.Error(t, r.err)
}

func TestUploadServerError(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail("POST", "/api/upload", 500, "")

	r := h.run("upload", "--agent", "1", h.writeFile("notes.md", "x"))
	assert.ErrorContains(t, r.err, "Failed to upload document")
	assert.Contains(t, r.stderr, "Uploading 1 file(s)...")
	assert.Contains(t, r.stderr, "[error] notes.md: Failed to upload document (HTTP 500)")
}

func TestChat(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")

	r := h.run("chat", "--agent", "1", "hello", "there")
	require.NoError(t, r.err)
	assert.Equal(t, "agent 1 heard: hello there\n", r.stdout)
}

func TestChatHTML(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")
	h.srv.Responder = func(_, _ string) string { return "**hi** <b>\nbye" }

	r := h.run("chat", "--agent", "1", "--html", "hello")
	require.NoError(t, r.err)
	assert.Equal(t, "<strong>hi</strong> &lt;b&gt;<br>bye\n", r.stdout)
}

func TestChatUnknownAgent(t *testing.T) {
	h := newHarness(t)
	r := h.run("chat", "--agent", "99", "hello")
	require.Error(t, r.err)
	assert.Equal(t, "agent not found", r.err.Error())
}

func TestChatRemembersLastAgent(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("First", "")
	h.srv.AddAgent("Second", "")

	r := h.run("chat", "hello")
	assert.ErrorIs(t, r.err, errNoAgent)

	require.NoError(t, h.run("chat", "--agent", "2", "hello").err)

	r = h.run("chat", "again")
	require.NoError(t, r.err)
	assert.Equal(t, "agent 2 heard: again\n", r.stdout)
}

func TestCreateSelectsNewAgent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("agent", "create", "Helper").err)

	r := h.run("chat", "hi")
	require.NoError(t, r.err)
	assert.Equal(t, "agent 1 heard: hi\n", r.stdout)
}

func TestHistoryAndDocuments(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")

	require.NoError(t, h.run("chat", "--agent", "1", "what is up").err)
	require.NoError(t, h.run("upload", "--agent", "1", h.writeFile("notes.md", "x")).err)

	r := h.run("agent", "history", "--agent", "1")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "you:   what is up")
	assert.Contains(t, r.stdout, "agent: agent 1 heard: what is up")

	r = h.run("agent", "documents", "--agent", "1")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "notes.md")
}

func TestDocumentsEmpty(t *testing.T) {
	h := newHarness(t)
	r := h.run("agent", "documents", "--agent", "1")
	require.NoError(t, r.err)
	assert.Equal(t, "No documents uploaded.\n", r.stdout)
}

func TestDocumentDelete(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")
	require.NoError(t, h.run("upload", "--agent", "1", h.writeFile("notes.md", "x")).err)

	r := h.run("document", "delete", "1")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "Deleted document 1")

	r = h.run("document", "delete", "1")
	require.Error(t, r.err)
	assert.Equal(t, "Document not found", r.err.Error())

	r = h.run("document", "delete", "abc")
	assert.ErrorContains(t, r.err, "invalid document id")
}

func TestTheme(t *testing.T) {
	h := newHarness(t)

	r := h.run("theme", "get")
	require.NoError(t, r.err)
	assert.Equal(t, "light\n", r.stdout)

	require.NoError(t, h.run("theme", "set", "dark").err)

	r = h.run("theme", "get")
	require.NoError(t, r.err)
	assert.Equal(t, "dark\n", r.stdout)

	assert.Error(t, h.run("theme", "set", "blue").err)
}

func TestConfigSetGetUnset(t *testing.T) {
	h := newHarness(t)

	r := h.run("config", "path")
	require.NoError(t, r.err)
	assert.Equal(t, filepath.Join(h.home, "config.yaml")+"\n", r.stdout)

	require.NoError(t, h.run("config", "set", "upload.concurrency", "2").err)

	r = h.run("config", "get", "upload.concurrency")
	require.NoError(t, r.err)
	assert.Equal(t, "2\n", r.stdout)

	require.NoError(t, h.run("config", "unset", "upload.concurrency").err)
	assert.Error(t, h.run("config", "get", "upload.concurrency").err)
}

func TestAgentsDefaultFromConfig(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")
	require.NoError(t, h.run("config", "set", "agents.default", "1").err)

	r := h.run("chat", "hi")
	require.NoError(t, r.err)
	assert.Equal(t, "agent 1 heard: hi\n", r.stdout)
}

func TestStatus(t *testing.T) {
	h := newHarness(t)
	r := h.run("status")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Server:  "+h.srv.URL+" (reachable)")
	assert.Contains(t, r.stdout, "theme=light")
	assert.NotContains(t, r.stdout, "Validation issues")
}

func TestMessageHooksRun(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")

	out := filepath.Join(t.TempDir(), "events.log")
	cfg := "hooks:\n" +
		"  messageReceived:\n" +
		"    - command: 'cat >> " + out + "'\n"
	require.NoError(t, os.WriteFile(filepath.Join(h.home, "config.yaml"), []byte(cfg), 0o600))

	require.NoError(t, h.run("chat", "--agent", "1", "ping").err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event":"message_received"`)
	assert.Contains(t, string(data), `"reply":"agent 1 heard: ping"`)
}

func TestWatchRejectsInvalidConfig(t *testing.T) {
	h := newHarness(t)
	cfg := "hooks:\n  filesChanged:\n    - command: \"echo 'oops\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(h.home, "config.yaml"), []byte(cfg), 0o600))

	r := h.run("watch", "--agent", "1", t.TempDir())
	assert.ErrorContains(t, r.err, "config validation failed")
}

func TestWatchUploadsDroppedFiles(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAgent("Helper", "")
	dir := t.TempDir()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--server", h.srv.URL, "--no-color", "--log-level", "silent", "watch", "--agent", "1", dir})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	// wait until the directory is being watched
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("dropped"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "virus.exe"), []byte("MZ"), 0o644))

	assert.Eventually(t, func() bool { return len(h.srv.Uploads()) == 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	uploads := h.srv.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "notes.md", uploads[0].Filename)
	assert.Equal(t, "dropped", string(uploads[0].Content))
}
