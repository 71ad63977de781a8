package parser

import (
	"testing"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func TestResolveEncodingPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		head     []byte
		want     string
	}{
		{
			name:     "declared label wins over BOM",
			declared: "windows-1252",
			head:     append(append([]byte{}, utf8BOM...), []byte("<html>")...),
			want:     "windows-1252",
		},
		{
			name:     "declared label is normalized",
			declared: "latin1",
			head:     []byte("<html>"),
			want:     "windows-1252",
		},
		{
			name:     "BOM wins over meta charset",
			declared: "",
			head:     append(append([]byte{}, utf8BOM...), []byte(`<meta charset="windows-1252">`)...),
			want:     "utf-8",
		},
		{
			name:     "utf-16 little endian BOM",
			declared: "",
			head:     []byte{0xFF, 0xFE, '<', 0x00},
			want:     "utf-16le",
		},
		{
			name:     "utf-16 big endian BOM",
			declared: "",
			head:     []byte{0xFE, 0xFF, 0x00, '<'},
			want:     "utf-16be",
		},
		{
			name:     "meta charset sniffed",
			declared: "",
			head:     []byte(`<html><head><meta charset="windows-1252"></head>`),
			want:     "windows-1252",
		},
		{
			name:     "meta charset single quoted",
			declared: "",
			head:     []byte(`<meta http-equiv="Content-Type" content="text/html; charset='koi8-r'">`),
			want:     "koi8-r",
		},
		{
			name:     "unknown declared label falls through",
			declared: "not-a-charset",
			head:     []byte(`<meta charset="windows-1252">`),
			want:     "windows-1252",
		},
		{
			name:     "empty head defaults to utf-8",
			declared: "",
			head:     nil,
			want:     "utf-8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, name := resolveEncoding(tt.declared, tt.head)
			if name != tt.want {
				t.Errorf("resolveEncoding(%q, ...) = %q, want %q", tt.declared, name, tt.want)
			}
		})
	}
}
