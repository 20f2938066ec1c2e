package backend

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// recordingRunner captures the invocation and returns canned results.
type recordingRunner struct {
	gotStdin string
	gotArgv  []string
	out      string
	err      error
}

func (r *recordingRunner) Run(ctx context.Context, stdin string, argv []string) (string, error) {
	r.gotStdin = stdin
	r.gotArgv = argv
	if r.err != nil {
		return "", r.err
	}
	return r.out, nil
}

func TestInvokePassesPromptAndBackend(t *testing.T) {
	runner := &recordingRunner{out: "SYNONYMS: a, b, c\n"}
	inv := NewInvoker(runner)

	got, err := inv.Invoke(context.Background(), "llama3.1:8b", "enrich abase", 30*time.Second)
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if got != "SYNONYMS: a, b, c" {
		t.Errorf("Invoke = %q, want trimmed response", got)
	}
	if runner.gotStdin != "enrich abase" {
		t.Errorf("prompt not passed on stdin: %q", runner.gotStdin)
	}
	wantArgv := []string{"ollama", "run", "llama3.1:8b"}
	if len(runner.gotArgv) != 3 {
		t.Fatalf("argv = %v, want %v", runner.gotArgv, wantArgv)
	}
	for i := range wantArgv {
		if runner.gotArgv[i] != wantArgv[i] {
			t.Errorf("argv[%d] = %q, want %q", i, runner.gotArgv[i], wantArgv[i])
		}
	}
}

func TestInvokeStripsANSI(t *testing.T) {
	runner := &recordingRunner{out: "\x1b[2K\x1b[1GSYNONYMS: \x1b[32ma, b, c\x1b[0m\n"}
	inv := NewInvoker(runner)

	got, err := inv.Invoke(context.Background(), "m", "p", time.Second)
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if got != "SYNONYMS: a, b, c" {
		t.Errorf("Invoke = %q, want ANSI stripped", got)
	}
}

func TestInvokeEmptyResponse(t *testing.T) {
	inv := NewInvoker(&recordingRunner{out: "  \n\x1b[2K "})
	_, err := inv.Invoke(context.Background(), "m", "p", time.Second)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestInvokePropagatesErrorTaxonomy(t *testing.T) {
	for _, sentinel := range []error{ErrTimeout, ErrNonZeroExit, ErrSpawnFailure} {
		inv := NewInvoker(&recordingRunner{err: fmt.Errorf("ollama: %w", sentinel)})
		_, err := inv.Invoke(context.Background(), "m", "p", time.Second)
		if !errors.Is(err, sentinel) {
			t.Errorf("err = %v, want %v", err, sentinel)
		}
	}
}

func TestExecRunnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ExecRunner{}.Run(ctx, "", []string{"sleep", "5"})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestExecRunnerSpawnFailure(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "", []string{"definitely-not-a-real-binary-xyz"})
	if !errors.Is(err, ErrSpawnFailure) {
		t.Errorf("err = %v, want ErrSpawnFailure", err)
	}
}

func TestAssignRoles(t *testing.T) {
	reg := NewRegistry([]Profile{
		{ID: "codellama:13b", Speed: SpeedSlow, Quality: QualitySpecialized},
		{ID: "llama3.1:8b", Speed: SpeedMedium, Quality: QualityHigh},
		{ID: "phi3:mini", Speed: SpeedMedium, Quality: QualityHigh},
		{ID: "qwen2.5:14b", Speed: SpeedMedium, Quality: QualityHigh},
	})
	roles := AssignRoles(reg)

	if id, _ := roles.First(RoleSynonymExpert); id != "llama3.1:8b" {
		t.Errorf("synonym expert = %q, want llama3.1:8b", id)
	}
	if id, _ := roles.First(RoleEtymologyExpert); id != "qwen2.5:14b" {
		t.Errorf("etymology expert = %q, want qwen2.5:14b", id)
	}
	// codellama is a grammar expert but never a general validator.
	for _, id := range roles[RoleGeneralValidator] {
		if id == "codellama:13b" {
			t.Error("codellama assigned as general validator")
		}
	}
}

func TestAssignRolesBackfillsEmptyRoles(t *testing.T) {
	reg := NewRegistry([]Profile{{ID: "custommodel:latest", Speed: SpeedMedium, Quality: QualityMedium}})
	roles := AssignRoles(reg)
	for _, role := range AllRoles() {
		if id, ok := roles.First(role); !ok || id != "custommodel:latest" {
			t.Errorf("role %s = %q (ok=%v), want backfilled custommodel:latest", role, id, ok)
		}
	}
}

func TestValidatorsExcluding(t *testing.T) {
	roles := Roles{RoleGeneralValidator: []string{"a", "b", "c"}}
	got := roles.ValidatorsExcluding("b", 2)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("ValidatorsExcluding = %v, want [a c]", got)
	}
}
