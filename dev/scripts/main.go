package main

import (
	"encoding/json"
	"flag"
	"fmt"
	devenv "frsmenu/dev/env"
	"frsmenu/internal/console"
	"frsmenu/lib/scrapers/frs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

func printScripts() {
	names := make([]string, 0, len(scriptMap))
	for key := range scriptMap {
		names = append(names, key)
	}
	sort.Strings(names)

	fmt.Println("Scripts:")
	for _, name := range names {
		fmt.Println("\t" + name)
	}
}

func main() {
	flag.Parse()

	script := flag.Arg(0)
	fn, ok := scriptMap[script]
	if !ok {
		fmt.Printf(
			"you must specify a valid script, '%s' is not a valid script.\n",
			script,
		)
		printScripts()
		os.Exit(1)
	}

	err := fn()
	if err != nil {
		slog.Error("script failed", "script", script, "err", err)
		os.Exit(1)
	}
}

func cmd(name string, args ...string) error {
	c := exec.Command(name, args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	fmt.Printf("$ %s %s\n", name, strings.Join(args, " "))
	return c.Run()
}

var scriptMap = map[string]func() error{
	"setup:live": setupLiveTests,
	"test":       runTests,
	"test:live":  runLiveTests,
}

// setupLiveTests asks for portal credentials and saves them where the live
// tests look for them.
func setupLiveTests() error {
	path, err := devenv.GetStateFilePath("frs.json5")
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		slog.Info("portal credentials have already been provided", "path", path)
		return nil
	}

	username, password, err := console.PromptCredentials(console.NewInput(os.Stdin), os.Stdout, "", "")
	if err != nil {
		return err
	}

	config := devenv.FrsTestConfig{
		BaseUrl:  frs.DefaultBaseUrl,
		Username: username,
		Password: password,
	}
	serialized, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0700)
	if err != nil {
		return err
	}
	err = os.WriteFile(path, serialized, 0600)
	if err != nil {
		return err
	}
	slog.Info("wrote portal credentials", "path", path)
	return nil
}

func runTests() error {
	return cmd("go", "test", "./...")
}

func runLiveTests() error {
	return cmd("go", "test", "./lib/scrapers/frs", "-run", "TestLive", "-count=1", "-v")
}
