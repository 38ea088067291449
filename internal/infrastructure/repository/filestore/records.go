package filestore

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// recordAPI keeps numbers as written so ids survive a decode/encode round trip.
var recordAPI = sonic.Config{
	EscapeHTML:       true,
	SortMapKeys:      true,
	CompactMarshaler: true,
	CopyString:       true,
	ValidateString:   true,
	UseNumber:        true,
}.Froze()

// RecordFile reads and writes arbitrary JSON arrays of objects.
type RecordFile struct{}

func (RecordFile) ReadRecords(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var out []map[string]any
	if err := recordAPI.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrapf(err, "decode %s as a list of objects", path)
	}
	return out, nil
}

func (RecordFile) WriteRecords(path string, records any) error {
	raw, err := recordAPI.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return writeFileAtomic(path, raw)
}
