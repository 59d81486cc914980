package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

const (
	keyPrefix = "e:"

	kindFile byte = 'f'
	kindDir  byte = 'd'

	headerSize = 9
)

// record is the decoded value of an entry key.
type record struct {
	kind    byte
	modTime time.Time
	data    []byte
}

func encodeRecord(kind byte, modTime time.Time, data []byte) []byte {
	buf := make([]byte, headerSize+len(data))
	buf[0] = kind
	binary.BigEndian.PutUint64(buf[1:headerSize], uint64(modTime.UnixNano()))
	copy(buf[headerSize:], data)
	return buf
}

func decodeRecord(val []byte) (record, error) {
	if len(val) < headerSize {
		return record{}, fmt.Errorf("corrupt entry: %d byte value", len(val))
	}
	if val[0] != kindFile && val[0] != kindDir {
		return record{}, fmt.Errorf("corrupt entry: unknown kind %q", val[0])
	}
	return record{
		kind:    val[0],
		modTime: time.Unix(0, int64(binary.BigEndian.Uint64(val[1:headerSize]))),
		data:    val[headerSize:],
	}, nil
}

func (r record) entry(p string) core.Entry {
	if r.kind == kindDir {
		return core.Entry{Path: p, Type: core.EntryDir, Timestamp: r.modTime}
	}
	return core.Entry{Path: p, Type: core.EntryFile, Size: int64(len(r.data)), Timestamp: r.modTime}
}

// entryKey returns the key of the entry at p.
func entryKey(p string) []byte {
	return []byte(keyPrefix + p)
}

// childPrefix returns the prefix shared by every key below p.
func childPrefix(p string) []byte {
	if p == "" {
		return []byte(keyPrefix)
	}
	return []byte(keyPrefix + p + "/")
}

// keyPath recovers the path from an entry key.
func keyPath(key []byte) string {
	return string(key[len(keyPrefix):])
}
