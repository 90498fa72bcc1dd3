package richtext

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/existflow/daybook/internal/model"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"empty", "", ""},
		{"emphasis stripped", "Some **bold** and _italic_ text", "Some bold and italic text"},
		{"heading and paragraph", "# Weekly plan\n\nShip the report", "Weekly plan\nShip the report"},
		{"list items", "- one\n- two", "one\ntwo"},
		{"image alt text", "see ![diagram](a1b2.png) here", "see diagram here"},
		{"link text", "[docs](https://example.com)", "docs"},
		{"fenced code kept", "```\nx := 1\n```", "x := 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.markup); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.markup, got, tt.want)
			}
		})
	}
}

func TestImageRefs(t *testing.T) {
	markup := strings.Join([]string{
		"![one](first.png)",
		"![remote](https://example.com/x.png)",
		"![path](../etc/passwd)",
		"![again](first.png)",
		"![two](second.jpg)",
	}, "\n\n")

	got := ImageRefs(markup)
	want := []string{"first.png", "second.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ImageRefs = %v, want %v", got, want)
	}
}

func TestReferencedFiles(t *testing.T) {
	note := model.Note{
		Markup: "![a](a.png)",
		Attachments: []model.Attachment{
			{Filename: "a.png"},
			{Filename: "b.png"},
		},
	}
	got := ReferencedFiles(note)
	want := []string{"a.png", "b.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReferencedFiles = %v, want %v", got, want)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	doc := Document{
		Markup: "# Title\n\n![shot](c0ffee.png)\n",
		Attachments: []model.Attachment{
			{Filename: "c0ffee.png", Size: 2048, Checksum: "abc", ContentType: "image/png"},
		},
	}

	blob, err := EncodeBlob(doc)
	if err != nil {
		t.Fatalf("EncodeBlob: %v", err)
	}
	if blob[0] != blobVersion {
		t.Fatalf("blob should start with version byte")
	}

	got, err := DecodeBlob(blob)
	if err != nil {
		t.Fatalf("DecodeBlob: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestDecodeBlobEdgeCases(t *testing.T) {
	blob, err := EncodeBlob(Document{})
	if err != nil || blob != nil {
		t.Fatalf("empty document should encode to nil, got %v, %v", blob, err)
	}

	doc, err := DecodeBlob(nil)
	if err != nil || doc.Markup != "" {
		t.Errorf("nil blob should decode to empty document")
	}

	if _, err := DecodeBlob([]byte{0x7f, 1, 2}); !errors.Is(err, ErrUnknownBlobVersion) {
		t.Errorf("expected ErrUnknownBlobVersion, got %v", err)
	}

	if _, err := DecodeBlob([]byte{blobVersion, 1, 2, 3}); err == nil {
		t.Errorf("expected error for corrupt payload")
	}
}
