package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temptrack/internal/adapter/jsonfile"
	"temptrack/internal/config"
	"temptrack/internal/domain"
)

var day0 = domain.MustParseDate("2026-01-01")

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "temptrack", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "export", "purge", "backup", "status"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	for _, name := range []string{"storage", "dsn"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

// seedStore writes cycle starts at the given offsets from day0 and one
// reading per start into a fresh jsonfile store.
func seedStore(t *testing.T, offsets ...int) string {
	t.Helper()
	t.Setenv("TEMPTRACK_STORAGE", "")
	t.Setenv("TEMPTRACK_DSN", "")
	t.Setenv("TEMPTRACK_RETENTION_DAYS", "")

	path := filepath.Join(t.TempDir(), "data.json")
	s, err := jsonfile.Open(path)
	require.NoError(t, err)
	ctx := context.Background()
	for _, o := range offsets {
		_, err := s.AddCycleStart(ctx, day0.AddDays(o), time.Now())
		require.NoError(t, err)
		_, err = s.UpsertReading(ctx, day0.AddDays(o), 36.3, time.Now())
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInvalidFormat(t *testing.T) {
	path := seedStore(t)
	_, err := execute(t, "status", "--storage", "jsonfile", "--dsn", path, "--format", "yaml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestStatus_JSON(t *testing.T) {
	path := seedStore(t, 0, 30, 58)

	out, err := execute(t, "status", "--storage", "jsonfile", "--dsn", path, "--format", "json", "--today", "2026-03-12")
	require.NoError(t, err)

	var st Status
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	require.NotNil(t, st.Current)
	require.NotNil(t, st.Prediction)
	assert.Equal(t, 13, st.Current.CycleDay)
	assert.Equal(t, domain.PhaseFollicular, st.Current.Phase)
	assert.Equal(t, "2026-03-29", st.Prediction.PredictedStart.String())
	assert.Equal(t, 17, st.Prediction.DaysUntil)
	assert.Equal(t, 3, st.Counts.Readings)
	assert.Equal(t, 2, st.Cycles.Count)
}

func TestStatus_TextWithoutCycles(t *testing.T) {
	path := seedStore(t)

	out, err := execute(t, "status", "--storage", "jsonfile", "--dsn", path, "--today", "2026-03-12")
	require.NoError(t, err)
	assert.Contains(t, out, "today:       2026-03-12")
	assert.Contains(t, out, "no cycle start recorded yet")
}

func TestExport_ToFile(t *testing.T) {
	path := seedStore(t, 0)
	target := filepath.Join(t.TempDir(), "out.csv")

	_, err := execute(t, "export", "--storage", "jsonfile", "--dsn", path, "-o", target)
	require.NoError(t, err)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "date,temperature_celsius,phase_label,notes_concatenated\n2026-01-01,36.30,Menstrual,\n", string(b))
}

func TestPurge(t *testing.T) {
	path := seedStore(t, 0, 30, 58)
	t.Setenv("TEMPTRACK_RETENTION_DAYS", "39")

	out, err := execute(t, "purge", "--storage", "jsonfile", "--dsn", path, "--today", "2026-03-12", "--format", "json")
	require.NoError(t, err)

	var res struct {
		Cutoff string             `json:"cutoff"`
		Purged domain.PurgeResult `json:"purged"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "2026-02-01", res.Cutoff)
	assert.Equal(t, domain.PurgeResult{Readings: 2, CycleStarts: 2}, res.Purged)
}

func TestBackup_RequiresBucket(t *testing.T) {
	path := seedStore(t)
	t.Setenv("TEMPTRACK_BACKUP_BUCKET", "")

	_, err := execute(t, "backup", "--storage", "jsonfile", "--dsn", path)
	assert.ErrorContains(t, err, "bucket")
}

func TestLoadConfig_StorageFlagWithoutDSN(t *testing.T) {
	t.Setenv("TEMPTRACK_STORAGE", "")
	t.Setenv("TEMPTRACK_DSN", "")
	t.Setenv("TEMPTRACK_RETENTION_DAYS", "")
	t.Setenv("DATABASE_URL", "postgres://db.local/temptrack")

	for driver, want := range map[string]string{
		"jsonfile": "temptrack.json",
		"sqlite":   "temptrack.db",
		"postgres": "postgres://db.local/temptrack",
	} {
		t.Run(driver, func(t *testing.T) {
			cfg, err := loadConfig(&RootOptions{Storage: driver, Format: "text"})
			require.NoError(t, err)
			assert.Equal(t, driver, cfg.Storage.Driver)
			assert.Equal(t, want, cfg.Storage.DSN)
		})
	}
}

func TestOpenStore_AllDrivers(t *testing.T) {
	dir := t.TempDir()
	for driver, dsn := range map[string]string{
		"memory":   "",
		"jsonfile": filepath.Join(dir, "data.json"),
		"sqlite":   filepath.Join(dir, "data.db"),
	} {
		t.Run(driver, func(t *testing.T) {
			s, err := openStore(storageConfig(driver, dsn))
			require.NoError(t, err)
			assert.NoError(t, s.Close())
		})
	}

	_, err := openStore(storageConfig("redis", "x"))
	assert.Error(t, err)
}

func storageConfig(driver, dsn string) config.StorageConfig {
	return config.StorageConfig{Driver: driver, DSN: dsn}
}
