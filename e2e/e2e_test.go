//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var ppacBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "ppac-e2e-*")
	if err != nil {
		panic(err)
	}

	ppacBinary = filepath.Join(tmpDir, "ppac")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", ppacBinary, "./cmd/ppac")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build ppac binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

// setupE2E points PPAC_HOME at $WORK/.ppac and configures a single repository
// named local whose catalog and archives live below $WORK/repo.
func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(ppacBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	ppacHome := filepath.Join(env.WorkDir, ".ppac")
	if err := os.MkdirAll(ppacHome, 0o750); err != nil {
		return err
	}
	env.Setenv("PPAC_HOME", ppacHome)

	repo := filepath.ToSlash(filepath.Join(env.WorkDir, "repo"))
	config := "[local]\n" +
		"repo_name = Local Repository\n" +
		"json_url = file://" + repo + "/packages.json\n" +
		"package_url = file://" + repo + "\n"
	return os.WriteFile(filepath.Join(ppacHome, "repo.config"), []byte(config), 0o600)
}
