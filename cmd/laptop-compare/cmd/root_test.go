package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/internal/catalog"
	"github.com/donaldgifford/laptop-compare/internal/engine"
	"github.com/donaldgifford/laptop-compare/pkg/market"
	domain "github.com/donaldgifford/laptop-compare/pkg/types"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

const testdataDir = "../../../internal/catalog/testdata/catalog"

// run executes the root command with args. Commands share package state,
// so these tests do not run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag in the command tree to its default so one
// test's flags do not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitOK},
		{name: "validation errors", err: ErrValidationFailed, want: ExitValidationFailed},
		{name: "wrapped validation errors", err: errors.Join(errors.New("x"), ErrValidationFailed), want: ExitValidationFailed},
		{name: "load failure", err: errors.New("reading products.yaml: permission denied"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestValidateCommand_Clean(t *testing.T) {
	out, err := run(t, "validate", "--data-dir", testdataDir)
	require.NoError(t, err)

	assert.Contains(t, out, "Validated 4 products")
	assert.Contains(t, out, "ERRORS (0)")
	assert.Contains(t, out, "Model Count (3)")
	assert.Contains(t, out, "- ThinkPad: 3 models")
	assert.Contains(t, out, "PASSED: 0 errors, 0 warnings")
}

func TestValidateCommand_JSON(t *testing.T) {
	out, err := run(t, "validate", "--data-dir", testdataDir, "--json")
	require.NoError(t, err)

	assert.Contains(t, out, `"errors": []`)
	assert.Contains(t, out, `"category": "Model Count"`)
}

func TestValidateCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, catalog.WriteRaw(dir, &catalog.Raw{
		Products: []*domain.Product{
			{ID: "dup", Name: "One", Lineup: domain.LineupThinkPad, Series: "T"},
			{ID: "dup", Name: "Two", Lineup: domain.LineupThinkPad, Series: "T"},
		},
	}))

	out, err := run(t, "validate", "--data-dir", dir)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, ExitValidationFailed, exitCode(err))
	assert.Contains(t, out, "Duplicate ID")
	assert.Contains(t, out, "FAILED:")
}

func TestValidateCommand_LoadFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.yaml"), []byte("id: [unterminated"), 0o600))

	_, err := run(t, "validate", "--data-dir", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, exitCode(err))
	assert.Contains(t, err.Error(), "parsing")
}

func TestValidateCommand_MissingDataDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	out, err := run(t, "validate", "--data-dir", missing)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, ExitFailure, exitCode(err))
	assert.Contains(t, err.Error(), "catalog source unavailable")
	assert.NotContains(t, out, "Critical")
}

func TestValidateCommand_EmptyProductTable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.yaml"), []byte("[]\n"), 0o600))

	out, err := run(t, "validate", "--data-dir", dir)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, ExitValidationFailed, exitCode(err))
	assert.Contains(t, out, "Critical (1)")
}

func TestValidateCommand_NoColorWhenPiped(t *testing.T) {
	out, err := run(t, "validate", "--data-dir", testdataDir)
	require.NoError(t, err)
	assert.NotContains(t, out, "\033[")
}

func TestPrintValidationReport_Color(t *testing.T) {
	t.Parallel()

	snap := &engine.Snapshot{
		RunID:   uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		Catalog: &domain.Catalog{Products: []*domain.Product{{ID: "dup"}}},
		Validation: validate.Result{
			Errors: []validate.Issue{{
				Level: validate.LevelError, Category: validate.CategoryDuplicateID,
				ProductID: "dup", Message: `Duplicate product ID: "dup"`,
			}},
		},
	}

	tests := []struct {
		name     string
		pal      palette
		contains []string
		excludes []string
	}{
		{
			name:     "colored",
			pal:      palette{on: true},
			contains: []string{"\033[1;31mERRORS (1)\033[0m", "\033[1;33mWARNINGS (0)\033[0m", "\033[1;31mFAILED\033[0m: 1 errors"},
		},
		{
			name:     "plain",
			pal:      palette{},
			contains: []string{"ERRORS (1)", "FAILED: 1 errors"},
			excludes: []string{"\033["},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, printValidationReport(&buf, snap, tt.pal))
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, buf.String(), bad)
			}
			assert.Contains(t, buf.String(), `- [dup] Duplicate product ID: "dup"`)
		})
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, colorEnabled(&buf), "non-file writers never get color")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled(os.Stdout))
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "score", "t14-gen5", "--data-dir", testdataDir)
	require.NoError(t, err)

	assert.Contains(t, out, "ThinkPad T14 Gen 5 (t14-gen5)")
	assert.Contains(t, out, "Core Ultra 7 155H")
	assert.Regexp(t, `Lowest price:\s+\$1060`, out)
	assert.Contains(t, out, "DIMENSION")
	assert.Contains(t, out, "Gaming")

	_, err = run(t, "score", "nope", "--data-dir", testdataDir)
	require.ErrorIs(t, err, engine.ErrProductNotFound)
}

func TestFrontierCommand_UnknownLineup(t *testing.T) {
	_, err := run(t, "frontier", "--lineup", "Yoga", "--data-dir", testdataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown lineup "Yoga"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "laptop-compare dev\n", out)
}

func TestPrintFrontier(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printFrontier(&buf, &engine.FrontierResult{
		Points: []engine.FrontierPoint{
			{Point: market.Point{ID: "a", Price: 999, Perf: 55.5}, Name: "Alpha", Lineup: domain.LineupThinkPad, Efficient: true},
			{Point: market.Point{ID: "b", Price: 1299, Perf: 50}, Name: "Beta", Lineup: domain.LineupLegion},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Regexp(t, `a\s+Alpha\s+ThinkPad\s+\$999\s+55\.5\s+\*`, out)
	assert.Regexp(t, `b\s+Beta\s+Legion\s+\$1299\s+50\.0\s*\n`, out)

	buf.Reset()
	require.NoError(t, printFrontier(&buf, &engine.FrontierResult{}))
	assert.Equal(t, "No priced products.\n", buf.String())
}

func TestPrintStaleDeals(t *testing.T) {
	t.Parallel()

	verified := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, printStaleDeals(&buf, []domain.Deal{
		{ID: "d1", ProductID: "t14-gen5", Retailer: "Lenovo", Price: 1049, LastVerified: &verified},
		{ID: "d2", ProductID: "legion-5i-gen9", Retailer: "Best Buy", Price: 1299},
	}, 14))

	out := buf.String()
	assert.Contains(t, out, "2025-09-01")
	assert.Regexp(t, `d2\s+legion-5i-gen9\s+Best Buy\s+\$1299\s+never`, out)

	buf.Reset()
	require.NoError(t, printStaleDeals(&buf, nil, 14))
	assert.Equal(t, "No deals older than 14 days.\n", buf.String())
}

func TestPrintDecision(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, printDecision(&buf, "t14s-gen5", market.Decision{
		Signal:       market.SignalHold,
		Label:        "Hold",
		Reason:       "Black Friday expected around 2025-11-22",
		UpcomingSale: "Black Friday",
		SaleStart:    &start,
		Notes:        []string{"DDR5 prices rising (+18%)"},
	}))

	out := buf.String()
	assert.Contains(t, out, "Hold")
	assert.Contains(t, out, "Black Friday (2025-11-22)")
	assert.Contains(t, out, "DDR5 prices rising (+18%)")
}

func TestOptionFlag(t *testing.T) {
	t.Parallel()

	assert.Nil(t, optionFlag(-1))
	require.NotNil(t, optionFlag(2))
	assert.Equal(t, 2, *optionFlag(2))
}

func TestLoadEnvFile(t *testing.T) {
	const key = "LCC_DOTENV_TEST_MARKER"
	t.Cleanup(func() { os.Unsetenv(key) })

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv(key))

	// Variables already set win over the file.
	t.Setenv(key, "from-env")
	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-env", os.Getenv(key))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	require.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	require.NoError(t, loadEnvFile(""))
}

func TestLoadEnvFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o600))

	assert.Error(t, loadEnvFile(path))
}

func TestPrintImports(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	at := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, printImports(&buf, []catalog.ImportRecord{{ID: id, RowCount: 42, ImportedAt: at}}))
	assert.Regexp(t, `0f8fad5b-d9cb-469f-a165-70867728950e\s+42\s+2025-10-01 09:30:00`, buf.String())

	buf.Reset()
	require.NoError(t, printImports(&buf, nil))
	assert.Equal(t, "No imports.\n", buf.String())
}

func TestImportsCommand_InvalidSince(t *testing.T) {
	_, err := run(t, "imports", "--since", "last week")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want YYYY-MM-DD")
	assert.Equal(t, ExitFailure, exitCode(err))
}
