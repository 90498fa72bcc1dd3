package richtext

import (
	"errors"
	"fmt"

	"github.com/existflow/daybook/internal/model"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// blobVersion prefixes every encoded blob. Bump it when Document changes
// incompatibly.
const blobVersion byte = 1

// ErrUnknownBlobVersion is returned for blobs written by another format
var ErrUnknownBlobVersion = errors.New("richtext: unknown blob version")

// Document is the rich content of a note as persisted in its blob column
type Document struct {
	Markup      string             `cbor:"1,keyasint"`
	Attachments []model.Attachment `cbor:"2,keyasint,omitempty"`
}

var (
	encMode     cbor.EncMode
	decMode     cbor.DecMode
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("richtext: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("richtext: CBOR decoder initialization failed: " + err.Error())
	}
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("richtext: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("richtext: zstd decoder initialization failed: " + err.Error())
	}
}

// EncodeBlob serializes doc as a version byte followed by zstd-compressed CBOR.
// An empty document encodes to nil.
func EncodeBlob(doc Document) ([]byte, error) {
	if doc.Markup == "" && len(doc.Attachments) == 0 {
		return nil, nil
	}
	raw, err := encMode.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode rich content: %w", err)
	}
	out := make([]byte, 0, len(raw)/2+1)
	out = append(out, blobVersion)
	return zstdEncoder.EncodeAll(raw, out), nil
}

// DecodeBlob reverses EncodeBlob. A nil or empty blob decodes to an empty
// document.
func DecodeBlob(blob []byte) (Document, error) {
	var doc Document
	if len(blob) == 0 {
		return doc, nil
	}
	if blob[0] != blobVersion {
		return doc, fmt.Errorf("%w: %d", ErrUnknownBlobVersion, blob[0])
	}
	raw, err := zstdDecoder.DecodeAll(blob[1:], nil)
	if err != nil {
		return doc, fmt.Errorf("decompress rich content: %w", err)
	}
	if err := decMode.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode rich content: %w", err)
	}
	return doc, nil
}
