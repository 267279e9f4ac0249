package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thoreinstein/mongo-toolkit/internal/conn"
)

// isolate points config discovery at empty temp directories and clears
// environment overrides.
func isolate(t *testing.T) {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	for _, key := range []string{"URI", "DATABASE", "APP_NAME", "SERVER_SELECTION_TIMEOUT", "DEBUG"} {
		t.Setenv("MONGO_TOOLKIT_"+key, "")
		os.Unsetenv("MONGO_TOOLKIT_" + key)
	}
	t.Setenv("FORCE_COLOR", "0")

	viper.Reset()
	t.Cleanup(viper.Reset)

	origInteractive := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = origInteractive })
}

// resetFlags restores every flag of c and its subcommands to its default so
// values from one Execute do not leak into the next. Contexts are cleared too;
// cobra only hands a subcommand the new context when it has none.
func resetFlags(c *cobra.Command) {
	c.SetContext(nil) //nolint:staticcheck // nil lets cobra propagate the next context
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns what it wrote to
// stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

// stubDeployment makes run and doctor use dep instead of dialing, and
// returns the connection options they asked for.
func stubDeployment(t *testing.T, dep conn.Deployment) *conn.Options {
	t.Helper()

	var got conn.Options
	orig := openDeployment
	openDeployment = func(_ context.Context, opts conn.Options, fn func(conn.Deployment) error) error {
		got = opts
		return fn(dep)
	}
	t.Cleanup(func() { openDeployment = orig })
	return &got
}

// failDeployment makes any connection attempt fail the test.
func failDeployment(t *testing.T) {
	t.Helper()

	orig := openDeployment
	openDeployment = func(context.Context, conn.Options, func(conn.Deployment) error) error {
		t.Fatal("no connection expected")
		return nil
	}
	t.Cleanup(func() { openDeployment = orig })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
