package tst

import (
	"strconv"
)

// header is the exact line every log file opens with.
const header = "TSTDB\n"

// logWriter appends one record per mutation and flushes synchronously,
// so that a mutating call returning true implies durability.
type logWriter struct {
	store  FileStore
	offset int64
}

func newLogWriter(store FileStore, offset int64) *logWriter {
	return &logWriter{store: store, offset: offset}
}

// writeHeader writes the header line at offset 0 and positions the
// writer just past it, for a freshly created log.
func (w *logWriter) writeHeader() error {
	if _, err := w.store.WriteAt([]byte(header), 0); err != nil {
		return err
	}
	w.offset = int64(len(header))
	return w.store.Sync()
}

// append writes one record line ("<len>\t<key>\n", len negative for a
// tombstone) at the writer's current offset and flushes before
// returning.
func (w *logWriter) append(key []byte, tombstone bool) error {
	n := len(key)
	if tombstone {
		n = -n
	}
	rec := make([]byte, 0, 12+len(key))
	rec = strconv.AppendInt(rec, int64(n), 10)
	rec = append(rec, '\t')
	rec = append(rec, key...)
	rec = append(rec, '\n')

	if _, err := w.store.WriteAt(rec, w.offset); err != nil {
		return err
	}
	w.offset += int64(len(rec))
	return w.store.Sync()
}
