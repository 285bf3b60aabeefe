//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// binaries built from ./cmd/<name>.
var binaries = []string{"plate-eval", "plate-score"}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles every command binary into bin/.
func Build() error {
	st.Deps(Init)
	for _, name := range binaries {
		if err := buildBinary(name); err != nil {
			return err
		}
	}
	return nil
}

// buildBinary compiles ./cmd/<name> when any Go source is newer than bin/<name>.
func buildBinary(name string) error {
	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", out, "./cmd/"+name)
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
// OpenCV, tesseract and onnxruntime must be installed; model tests skip
// when testdata/char_classifier.onnx is absent.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestScore runs only the dependency-free scoring packages.
func TestScore() error {
	return sh.RunV("go", "test", "-race", "-cover", "./score/...", "./internal/...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts and plate crops.
func Clean() error {
	artifacts := []string{"bin/", "coverage.out", "coverage.html", "plates-preview/"}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binaries to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	for _, name := range binaries {
		src := "bin/" + name
		dst := bin + "/" + name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, src); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", name, dst)
		}
	}
	return nil
}

// Eval namespace for corpus evaluation targets.
type Eval st.Namespace

// Run evaluates the corpus in PLATE_CORPUS (default img/plates) with the
// classifier in PLATE_CHAR_MODEL and fails when the corpus fails.
func (Eval) Run() error {
	st.Deps(Build)
	return sh.RunV("./bin/plate-eval", "-corpus", corpusDir())
}

// Preview evaluates the corpus and writes every detected plate to plates-preview/.
func (Eval) Preview() error {
	st.Deps(Build)
	return sh.RunV("./bin/plate-eval", "-corpus", corpusDir(), "-preview", "plates-preview")
}

// Compare evaluates every classifier listed in PLATE_MODELS (comma-separated).
func (Eval) Compare() error {
	st.Deps(Build)

	models := os.Getenv("PLATE_MODELS")
	if models == "" {
		return fmt.Errorf("PLATE_MODELS not set")
	}
	return sh.RunV("./bin/plate-eval", "-corpus", corpusDir(), "-models", models)
}

func corpusDir() string {
	if dir := os.Getenv("PLATE_CORPUS"); dir != "" {
		return dir
	}
	return "img/plates"
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, scoring tests).
func Check() error {
	st.Deps(Vet, Lint, TestScore)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}
