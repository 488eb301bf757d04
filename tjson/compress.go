package tjson

import (
	"github.com/klauspost/compress/zstd"
)

// zstd-framed document helpers. TJSON text is verbose by construction
// (tags on every member name, base64 for binary data), so documents
// that travel or rest compress well. The encoder and decoder are
// stateless across calls and safe for concurrent use.

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("tjson: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("tjson: zstd decoder initialization failed: " + err.Error())
	}
}

// MarshalCompressed renders v as compact canonical TJSON text and
// compresses it into a zstd frame.
func MarshalCompressed(v *Value) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// UnmarshalCompressed decompresses a zstd frame produced by
// MarshalCompressed and parses the TJSON text inside.
func UnmarshalCompressed(data []byte) (*Value, error) {
	text, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, errf(ErrInvalidData, "zstd frame: %v", err)
	}
	return Unmarshal(text)
}
