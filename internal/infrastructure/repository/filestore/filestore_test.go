package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
	"github.com/stretchr/testify/require"
)

func TestArtifactName(t *testing.T) {
	cases := map[string]struct {
		id   int64
		name string
		want string
	}{
		"plain":      {id: 12, name: "Tom Brady", want: "12_Tom_Brady.json"},
		"tabs":       {id: 3, name: " Jo\tEl ", want: "3_Jo_El.json"},
		"separators": {id: 9, name: "A/B\\C", want: "9_A_B_C.json"},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			if got := ArtifactName(tc.id, tc.name); got != tc.want {
				t.Fatalf("ArtifactName(%d, %q) = %q, want %q", tc.id, tc.name, got, tc.want)
			}
		})
	}
}

func TestProfileStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewProfileStore(dir)

	first := player.NewProfile(1, "A B")
	first.Position = player.Ptr("QB")
	first.College = player.Ptr("X")
	second := player.NewProfile(2, "C D")

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	// last write wins
	second.HighSchool = player.Ptr("Central")
	require.NoError(t, store.Save(ctx, second))

	_, err := os.Stat(filepath.Join(dir, ProfileDirName, "1_A_B.json"))
	require.NoError(t, err)

	got, err := store.List(ctx)
	require.NoError(t, err)
	sort.Slice(got, func(i, j int) bool { return got[i].PlayerID < got[j].PlayerID })

	if diff := cmp.Diff([]player.Profile{first, second}, got); diff != "" {
		t.Fatalf("profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileStore_RejectsInvalidProfile(t *testing.T) {
	store := NewProfileStore(t.TempDir())
	require.Error(t, store.Save(context.Background(), player.Profile{PlayerID: 1}))
}

func TestProfileStore_ListMissingDirIsEmpty(t *testing.T) {
	got, err := NewProfileStore(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestProfileStore_ListFailsOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewProfileStore(dir)
	require.NoError(t, store.Save(context.Background(), player.NewProfile(1, "A B")))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "2_Bad.json"), []byte("{"), 0o644))

	_, err := store.List(context.Background())
	require.ErrorContains(t, err, "2_Bad.json")
}

func TestGameStore_SaveAndListAll(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore(t.TempDir())

	games := []gamelog.GameStat{
		{PlayerID: 5, GameID: "200709090nwe", Year: 2007, PassingAttempts: 28},
		{PlayerID: 5, GameID: "200709160sdg", Year: 2007, PassingRating: 101.5},
	}
	require.NoError(t, store.Save(ctx, 5, "Tom Brady", games))
	require.NoError(t, store.Save(ctx, 6, "No Games", nil))

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	sort.Slice(got, func(i, j int) bool { return got[i].PlayerID < got[j].PlayerID })

	want := []gamelog.PlayerGames{
		{PlayerID: 5, Source: "5_Tom_Brady.json", Games: games},
		{PlayerID: 6, Source: "6_No_Games.json", Games: []gamelog.GameStat{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("games mismatch (-want +got):\n%s", diff)
	}
}

func TestGameStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore(t.TempDir())

	require.NoError(t, store.Save(ctx, 5, "Tom Brady", []gamelog.GameStat{{PlayerID: 5, GameID: "g1"}}))
	require.NoError(t, store.Delete(ctx, 5, "Tom Brady"))
	require.NoError(t, store.Delete(ctx, 5, "Tom Brady"), "deleting twice is fine")

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGameStore_SaveHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewGameStore(t.TempDir()).Save(ctx, 1, "A", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCorpusTimestamp(t *testing.T) {
	at := time.Unix(1512362725, 22629*int64(time.Microsecond))
	require.Equal(t, "1512362725.022629", CorpusTimestamp(at))
}

func TestCorpusWriter_WriteAndLatest(t *testing.T) {
	dir := t.TempDir()
	writer := NewCorpusWriter(dir)

	older := time.Unix(999999999, 0)
	newer := time.Unix(1000000000, 5000)

	_, _, err := writer.Write(older, nil, nil)
	require.NoError(t, err)
	profilesPath, gamesPath, err := writer.Write(newer, []player.Profile{player.NewProfile(1, "A B")}, nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "profiles_1000000000.000005.json"), profilesPath)

	latest, err := LatestCorpus(dir)
	require.NoError(t, err)
	require.Equal(t, CorpusPaths{Profiles: profilesPath, Games: gamesPath}, latest)

	var profiles []player.Profile
	require.NoError(t, ReadJSON(latest.Profiles, &profiles))
	require.Len(t, profiles, 1)

	var games []gamelog.GameStat
	require.NoError(t, ReadJSON(latest.Games, &games))
	require.NotNil(t, games)
	require.Empty(t, games)
}

func TestLatestCorpus_Empty(t *testing.T) {
	_, err := LatestCorpus(t.TempDir())
	require.True(t, errors.Is(err, ErrNoCorpus))
}

func TestClearDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, NewProfileStore(dir).Save(context.Background(), player.NewProfile(1, "A B")))

	require.NoError(t, ClearDataDir(dir))
	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err))

	require.Error(t, ClearDataDir(" "))
}

func TestRecordFile_RoundTripKeepsNumbers(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`[{"player_id": 9007199254740993, "name": "A B", "weight": null}]`), 0o644))

	var files RecordFile
	records, err := files.ReadRecords(in)
	require.NoError(t, err)
	require.Len(t, records, 1)

	out := filepath.Join(dir, "out", "fixture.json")
	require.NoError(t, files.WriteRecords(out, records))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, `[{"name":"A B","player_id":9007199254740993,"weight":null}]`, string(raw))
}

func TestRecordFile_RejectsNonArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obj.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o644))

	_, err := RecordFile{}.ReadRecords(path)
	require.ErrorContains(t, err, "list of objects")
}

func TestCorpusReader(t *testing.T) {
	dir := t.TempDir()
	games := []gamelog.GameStat{{PlayerID: 1, GameID: "g1", GameLocation: gamelog.LocationHome}}
	_, _, err := NewCorpusWriter(dir).Write(time.Unix(10, 0), []player.Profile{player.NewProfile(1, "A B")}, games)
	require.NoError(t, err)

	reader := NewCorpusReader(dir)
	profilesPath, gamesPath, err := reader.Latest()
	require.NoError(t, err)

	profiles, err := reader.ReadProfiles(profilesPath)
	require.NoError(t, err)
	require.Equal(t, "A B", profiles[0].Name)

	got, err := reader.ReadGames(gamesPath)
	require.NoError(t, err)
	if diff := cmp.Diff(games, got); diff != "" {
		t.Fatalf("games mismatch (-want +got):\n%s", diff)
	}
}
