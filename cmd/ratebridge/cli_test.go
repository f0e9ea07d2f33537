package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ratebridge/internal/config"
	"ratebridge/internal/plan"
	"ratebridge/internal/ratings"
	"ratebridge/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, opts...)
	return &cliTestEnv{
		cfg:        cfg,
		configPath: testsupport.WriteConfigFile(t, cfg),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "fresh", "config.toml")
	out, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err == nil {
		t.Fatal("second init without --overwrite must fail")
	}
}

func TestConfigValidate(t *testing.T) {
	setupCLITestEnv(t)

	out, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestPlanShowMigrateRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.WriteSourceRatings(t, env.cfg.Paths.SourceFile, []ratings.SourceRating{
		{Title: "Film A", Year: "2001", SourceID: "s1", TargetID: "tt1", Rating: 4},
		{Title: "Film C", Year: "2003", SourceID: "s3", TargetID: "tt3", Rating: 5},
		{Title: "Orphan", Year: "2005", SourceID: "s5", Rating: 3},
	})
	testsupport.WriteTargetRatings(t, env.cfg.Paths.TargetFile, []ratings.TargetRating{
		{Title: "Film A", Year: "2001", TargetID: "tt1", Rating: 8},
	})

	out, err := runCLI(t, []string{"plan"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	requireContains(t, out, "Plan written to")

	built, err := plan.Load(env.cfg.Paths.PlanFile)
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if built.Pending() != 1 || built.ToMigrate[0].TargetID != "tt3" {
		t.Fatalf("unexpected plan: %+v", built)
	}

	out, err = runCLI(t, []string{"show", "--pending"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	requireContains(t, out, "tt3")
	requireContains(t, out, "Pending migrations (1)")

	out, err = runCLI(t, []string{"migrate", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("migrate --dry-run: %v\n%s", err, out)
	}
	requireContains(t, out, "(dry run)")
	requireContains(t, out, "Succeeded")

	out, err = runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "Applied")
	requireContains(t, out, "1 of 1")
}

func TestMigrateWithoutEffectorCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.WriteSourceRatings(t, env.cfg.Paths.SourceFile, []ratings.SourceRating{
		{Title: "Film C", Year: "2003", SourceID: "s3", TargetID: "tt3", Rating: 5},
	})
	testsupport.WriteTargetRatings(t, env.cfg.Paths.TargetFile, nil)

	if out, err := runCLI(t, []string{"plan"}, env.configPath); err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	if _, err := runCLI(t, []string{"migrate"}, env.configPath); err == nil {
		t.Fatal("migrate without effector command must fail")
	}
}

func TestStatusWithoutPlan(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "not built yet")
}
