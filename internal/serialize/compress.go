package serialize

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame header of ZStandard data.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsCompressed reports whether data starts with a ZStandard frame header.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Compressor packs payloads with ZStandard.
// Safe for concurrent use; create once and reuse.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a compressor at level.
// Caller must call Close() when done to release resources.
func NewCompressor(level zstd.EncoderLevel) (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &Compressor{encoder: encoder}, nil
}

// Compress compresses data. Empty input yields empty output.
func (c *Compressor) Compress(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor unpacks ZStandard payloads.
// Safe for concurrent use; create once and reuse.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a decompressor.
// Caller must call Close() when done to release resources.
func NewDecompressor() (*Decompressor, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Decompressor{decoder: decoder}, nil
}

// Decompress decompresses data.
func (d *Decompressor) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}
	data, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return data, nil
}

// Close releases decompressor resources.
func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}

// Pack compresses data with the default level.
func Pack(data []byte) ([]byte, error) {
	c, err := NewCompressor(zstd.SpeedDefault)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Compress(data), nil
}

// Unpack decompresses data when it carries a ZStandard header and returns
// it unchanged otherwise.
func Unpack(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}
	d, err := NewDecompressor()
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.Decompress(data)
}
