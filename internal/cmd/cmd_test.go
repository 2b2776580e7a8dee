package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/fundplan/internal/config"
	"github.com/felixgeelhaar/fundplan/internal/log"
	"github.com/felixgeelhaar/fundplan/internal/preset"
)

// cliEnv runs the root command against temporary user and project
// directories.
type cliEnv struct {
	userDir    string
	projectDir string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{userDir: t.TempDir(), projectDir: t.TempDir()}

	origConfigLoader, origPresetLoader := newConfigLoader, newPresetLoader
	newConfigLoader = func() *config.Loader {
		return config.NewLoaderWithDirs(env.userDir, env.projectDir)
	}
	newPresetLoader = func() *preset.Loader {
		l := preset.NewLoader()
		l.SetUserDir(env.userDir)
		l.SetProjectDir(env.projectDir)
		return l
	}
	t.Cleanup(func() {
		newConfigLoader, newPresetLoader = origConfigLoader, origPresetLoader
		appConfig = nil
		logger = log.Discard()
	})
	return env
}

func (e *cliEnv) writeProjectFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.projectDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func (e *cliEnv) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return e.runContext(t, context.Background(), args...)
}

func (e *cliEnv) runContext(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	appConfig = nil

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag in the tree to its default, since the
// commands are package-level and keep state between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
