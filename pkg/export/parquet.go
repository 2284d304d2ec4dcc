package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"oilens/pkg/series"
)

type tableRecord struct {
	Timestamp    int64   `parquet:"name=timestamp, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	CEOI         *int64  `parquet:"name=ce_oi, type=INT64, repetitiontype=OPTIONAL"`
	PEOI         *int64  `parquet:"name=pe_oi, type=INT64, repetitiontype=OPTIONAL"`
	OIDifference *int64  `parquet:"name=oi_difference, type=INT64, repetitiontype=OPTIONAL"`
	Strike       *string `parquet:"name=strike, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// memFile satisfies source.ParquetFile over an in-memory buffer so the
// writer never touches the filesystem.
type memFile struct {
	buf *bytes.Buffer
}

func newMemFile() *memFile {
	return &memFile{buf: &bytes.Buffer{}}
}

func (m *memFile) Create(string) (source.ParquetFile, error) { return m, nil }
func (m *memFile) Open(string) (source.ParquetFile, error)   { return m, nil }
func (m *memFile) Seek(int64, int) (int64, error)            { return int64(m.buf.Len()), nil }
func (m *memFile) Read([]byte) (int, error)                  { return 0, fmt.Errorf("read not supported") }
func (m *memFile) Write(b []byte) (int, error)               { return m.buf.Write(b) }
func (m *memFile) Close() error                              { return nil }
func (m *memFile) Bytes() []byte                             { return m.buf.Bytes() }

func writeParquet(s *series.Series, compression string, w io.Writer) error {
	mem := newMemFile()

	pw, err := writer.NewParquetWriter(mem, new(tableRecord), 1)
	if err != nil {
		return fmt.Errorf("new parquet writer: %w", err)
	}

	switch strings.ToLower(compression) {
	case "snappy":
		pw.CompressionType = parquet.CompressionCodec_SNAPPY
	case "gzip":
		pw.CompressionType = parquet.CompressionCodec_GZIP
	default:
		pw.CompressionType = parquet.CompressionCodec_UNCOMPRESSED
	}

	for _, row := range s.Table() {
		rec := tableRecord{
			Timestamp:    row.Timestamp.UnixMilli(),
			CEOI:         row.CEOI,
			PEOI:         row.PEOI,
			OIDifference: row.OIDifference,
			Strike:       row.Strike,
		}
		if err := pw.Write(rec); err != nil {
			pw.WriteStop()
			return fmt.Errorf("write parquet record: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalize parquet: %w", err)
	}

	if _, err := w.Write(mem.Bytes()); err != nil {
		return fmt.Errorf("writing parquet output: %w", err)
	}

	return nil
}
