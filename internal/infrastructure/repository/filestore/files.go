package filestore

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

const (
	ProfileDirName = "profile"
	StatsDirName   = "stats"

	jsonExt  = ".json"
	dirPerm  = 0o755
	filePerm = 0o644
)

// ArtifactName is "<id>_<name>.json" with whitespace and path separators in the name
// replaced by underscores.
func ArtifactName(playerID int64, name string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	return strconv.FormatInt(playerID, 10) + "_" + clean + jsonExt
}

// playerIDFromName reads the id prefix of an artifact file name.
func playerIDFromName(fileName string) (int64, error) {
	prefix, _, ok := strings.Cut(filepath.Base(fileName), "_")
	if !ok {
		prefix = strings.TrimSuffix(filepath.Base(fileName), jsonExt)
	}
	id, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "artifact %s has no player id prefix", fileName)
	}
	return id, nil
}

// WriteJSON encodes v and atomically replaces path with the result.
func WriteJSON(path string, v any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(v); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return writeFileAtomic(path, buf.B)
}

// ReadJSON decodes the file at path into v.
func ReadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if err := sonic.ConfigStd.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "chmod %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "rename %s", path)
	}
	return nil
}

// listArtifacts returns the JSON files of dir, or nothing when dir does not exist.
func listArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || filepath.Ext(entry.Name()) != jsonExt {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	return out, nil
}

// ClearDataDir removes every artifact under dataDir.
func ClearDataDir(dataDir string) error {
	if strings.TrimSpace(dataDir) == "" {
		return errors.New("data dir is empty")
	}
	if err := os.RemoveAll(dataDir); err != nil {
		return errors.Wrapf(err, "clear %s", dataDir)
	}
	return nil
}

// DataDir is the root holding the profile and stats directories.
type DataDir string

func (d DataDir) Clear() error {
	return ClearDataDir(string(d))
}
