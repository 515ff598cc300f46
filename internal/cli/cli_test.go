package cli

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertguss/vibe-academy-go/internal/config"
	"github.com/robertguss/vibe-academy-go/internal/generator"
	"github.com/robertguss/vibe-academy-go/internal/preset"
	"github.com/robertguss/vibe-academy-go/internal/testutil"
)

type testApp struct {
	*App
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &testApp{
		App: &App{
			Loader: config.NewLoader().WithSearchPaths(t.TempDir()).WithEnvFiles(),
			Out:    out,
			Err:    errOut,
			cfg:    testutil.NewTestConfig(t),
		},
		out: out,
		err: errOut,
	}
}

func (a *testApp) run(args ...string) int {
	a.out.Reset()
	a.err.Reset()
	return Run(context.Background(), a.App, args)
}

// seedAnswers saves a full set of answers without completing the session
func seedAnswers(t *testing.T, a *testApp) {
	t.Helper()
	s, err := a.openSession(context.Background())
	require.NoError(t, err)
	defer s.Close()

	s.orch.Apply(testutil.CompletedAnswers())
	require.NoError(t, s.orch.Persist(context.Background()))
}

// seedCompleted runs a session to completion so it is saved as complete
func seedCompleted(t *testing.T, a *testApp) string {
	t.Helper()
	s, err := a.openSession(context.Background())
	require.NoError(t, err)
	defer s.Close()

	s.orch.Apply(testutil.CompletedAnswers())
	s.orch.GoToStage(4)
	for i := 0; i < 5; i++ {
		s.orch.Validate()
	}
	require.Eventually(t, func() bool {
		_, ok := s.orch.Result()
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	return s.orch.SessionID()
}

func TestVersion(t *testing.T) {
	a := newTestApp(t)

	require.Equal(t, 0, a.run("version"))
	assert.Contains(t, a.out.String(), "vibe dev")
	assert.Contains(t, a.out.String(), "documents: v"+generator.Version)
}

func TestRoot_RequiresTerminal(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, 2, a.run())
	assert.Contains(t, a.err.String(), "interactive terminal")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTempFileInDir(t, dir, "custom.yaml", fmt.Sprintf("data_dir: %s\n", filepath.Join(dir, "data")))

	a := newTestApp(t)
	a.cfg = nil

	require.Equal(t, 0, a.run("--config", path, "preset", "list"))
	assert.Contains(t, a.out.String(), filepath.Join(dir, "data", "presets"))
	assert.DirExists(t, filepath.Join(dir, "data", "presets"))
}

func TestConfigFlag_InvalidFile(t *testing.T) {
	path := testutil.CreateTempFile(t, testutil.MalformedYAML())

	a := newTestApp(t)
	a.cfg = nil

	assert.Equal(t, 1, a.run("--config", path, "preset", "list"))
	assert.Contains(t, a.err.String(), "failed to read config")
}

func TestGenerate(t *testing.T) {
	t.Run("incomplete session", func(t *testing.T) {
		a := newTestApp(t)
		seedAnswers(t, a)

		assert.Equal(t, 1, a.run("generate"))
		assert.Contains(t, a.err.String(), "no completed session")
	})

	t.Run("completed session", func(t *testing.T) {
		a := newTestApp(t)
		seedCompleted(t, a)

		require.Equal(t, 0, a.run("generate"))
		assert.Contains(t, a.out.String(), "Wrote 5 documents")
		for _, name := range generator.Filenames() {
			assert.FileExists(t, filepath.Join(a.cfg.OutputDir, name))
		}
	})

	t.Run("custom output directory", func(t *testing.T) {
		a := newTestApp(t)
		seedCompleted(t, a)
		out := filepath.Join(t.TempDir(), "docs")

		require.Equal(t, 0, a.run("generate", "--out", out))
		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Len(t, entries, 5)
	})

	t.Run("from preset", func(t *testing.T) {
		a := newTestApp(t)
		store := preset.NewStore(a.cfg.PresetsDir)
		require.NoError(t, store.Save(preset.FromAnswers("portfolio", "", testutil.CompletedAnswers())))

		require.Equal(t, 0, a.run("generate", "--preset", "portfolio"))
		assert.FileExists(t, filepath.Join(a.cfg.OutputDir, generator.FileProjectBrief))
	})

	t.Run("unknown preset", func(t *testing.T) {
		a := newTestApp(t)

		assert.Equal(t, 1, a.run("generate", "--preset", "missing"))
		assert.Contains(t, a.err.String(), `preset "missing" not found`)
	})
}

func TestGenerate_List(t *testing.T) {
	a := newTestApp(t)

	require.Equal(t, 0, a.run("generate", "--list"))
	assert.Contains(t, a.out.String(), "No archived documents")

	id := seedCompleted(t, a)

	require.Equal(t, 0, a.run("generate", "--list"))
	assert.Contains(t, a.out.String(), generator.FileProjectBrief)
	assert.Contains(t, a.out.String(), id[:8])

	require.Equal(t, 0, a.run("generate", "--list", "--session", "other"))
	assert.Contains(t, a.out.String(), "No archived documents")
}

func TestReset(t *testing.T) {
	a := newTestApp(t)
	id := seedCompleted(t, a)

	require.Equal(t, 0, a.run("reset", "--documents"))
	assert.Contains(t, a.out.String(), id[:8])

	s, err := a.openSession(context.Background())
	require.NoError(t, err)
	defer s.Close()

	assert.NotEqual(t, id, s.orch.SessionID())
	assert.False(t, s.orch.HasUnsavedProgress())
	_, ok := s.orch.Result()
	assert.False(t, ok)

	docs, err := s.store.ListDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPreset_Lifecycle(t *testing.T) {
	a := newTestApp(t)

	require.Equal(t, 0, a.run("preset", "list"))
	assert.Contains(t, a.out.String(), "No presets")

	t.Run("save needs answers", func(t *testing.T) {
		assert.Equal(t, 1, a.run("preset", "save", "empty"))
		assert.Contains(t, a.err.String(), "no answers")
	})

	t.Run("save rejects bad names", func(t *testing.T) {
		assert.Equal(t, 1, a.run("preset", "save", "../escape"))
	})

	seedAnswers(t, a)

	require.Equal(t, 0, a.run("preset", "save", "mine", "-d", "my portfolio"))
	assert.Contains(t, a.out.String(), "Saved preset mine (5 stages)")
	assert.FileExists(t, filepath.Join(a.cfg.PresetsDir, "mine.yaml"))

	require.Equal(t, 0, a.run("preset", "list"))
	assert.Contains(t, a.out.String(), "mine")
	assert.Contains(t, a.out.String(), "my portfolio")
	assert.Contains(t, a.out.String(), "5/5")

	require.Equal(t, 0, a.run("reset"))
	require.Equal(t, 0, a.run("preset", "apply", "mine"))
	assert.Contains(t, a.out.String(), "Applied preset mine")

	s, err := a.openSession(context.Background())
	require.NoError(t, err)
	assert.True(t, s.orch.HasUnsavedProgress())
	assert.Len(t, preset.FromAnswers("check", "", s.orch.CollectedData()).Stages(), 5)
	s.Close()

	require.Equal(t, 0, a.run("preset", "delete", "mine"))
	assert.NoFileExists(t, filepath.Join(a.cfg.PresetsDir, "mine.yaml"))
	assert.Equal(t, 1, a.run("preset", "delete", "mine"))
	assert.Equal(t, 1, a.run("preset", "apply", "mine"))
}

func TestServe(t *testing.T) {
	a := newTestApp(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, a.App, port) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Contains(t, a.out.String(), "Session saved")
}

func TestDoctor(t *testing.T) {
	a := newTestApp(t)

	require.Equal(t, 0, a.run("doctor"))
	assert.Contains(t, a.out.String(), "Database")
	assert.Contains(t, a.out.String(), "6/6 checks passed")

	a.cfg.Theme = "missing"
	assert.Equal(t, 1, a.run("doctor"))
	assert.Contains(t, a.out.String(), "✗ Theme")
	assert.Contains(t, a.err.String(), "pre-flight checks failed")
}

func TestIsExitError(t *testing.T) {
	code, ok := IsExitError(fmt.Errorf("wrapped: %w", NewExitError(3, nil)))
	assert.True(t, ok)
	assert.Equal(t, 3, code)

	_, ok = IsExitError(fmt.Errorf("plain"))
	assert.False(t, ok)
	assert.Equal(t, "exit status 4", NewExitError(4, nil).Error())
}
