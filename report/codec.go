package report

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hupe1980/knntune/internal/hash"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec encodes and decodes report payloads.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// JSON is the standard-library JSON codec.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used by Encode and Decode.
var Default Codec = JSON{}

// Compression selects how the encoded payload is compressed.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4 Compression = 1
	// CompressionZstd uses zstd. It is the default for archives.
	CompressionZstd Compression = 2
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as returned by String.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("report: unknown compression %q", s)
	}
}

var (
	// ErrUnknownCompression is returned when the tag byte is not recognized.
	ErrUnknownCompression = errors.New("report: unknown compression tag")
	// ErrCorrupt is returned when a payload cannot be decompressed.
	ErrCorrupt = errors.New("report: corrupt payload")
	// ErrChecksum is returned when the CRC32C trailer does not match.
	ErrChecksum = errors.New("report: checksum mismatch")
)

// maxPayload bounds the decompressed size accepted from an LZ4 header.
const maxPayload = 256 << 20

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayload))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Encode writes r to w as [tag][payload][crc32c], the checksum covering
// tag and payload.
//
// LZ4 payloads carry a little-endian uint32 uncompressed size before the
// block. Incompressible LZ4 input falls back to CompressionNone.
func Encode(w io.Writer, r *Report, c Compression) error {
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := Default.Marshal(r)
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	out, err := compress(data, c)
	if err != nil {
		return err
	}
	_, err = w.Write(hash.AppendCRC32C(out))
	return err
}

// Decode reads a report written by Encode.
func Decode(rd io.Reader) (*Report, error) {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	if len(raw) < 5 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(raw))
	}
	framed, ok := hash.VerifyCRC32C(raw)
	if !ok {
		return nil, ErrChecksum
	}
	data, err := decompress(framed)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := Default.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report: unmarshal: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return append([]byte{byte(CompressionNone)}, data...), nil

	case CompressionLZ4:
		buf := make([]byte, 5+lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf[5:], nil)
		if err != nil {
			return nil, fmt.Errorf("report: lz4: %w", err)
		}
		if n == 0 {
			return compress(data, CompressionNone)
		}
		buf[0] = byte(CompressionLZ4)
		binary.LittleEndian.PutUint32(buf[1:5], uint32(len(data)))
		return buf[:5+n], nil

	case CompressionZstd:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		return enc.EncodeAll(data, []byte{byte(CompressionZstd)}), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}

func decompress(raw []byte) ([]byte, error) {
	tag, body := Compression(raw[0]), raw[1:]
	switch tag {
	case CompressionNone:
		return body, nil

	case CompressionLZ4:
		if len(body) < 4 {
			return nil, fmt.Errorf("%w: lz4 header too small", ErrCorrupt)
		}
		size := binary.LittleEndian.Uint32(body[:4])
		if size > maxPayload {
			return nil, fmt.Errorf("%w: lz4 size %d exceeds limit", ErrCorrupt, size)
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body[4:], out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil

	case CompressionZstd:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(body, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(tag))
	}
}
