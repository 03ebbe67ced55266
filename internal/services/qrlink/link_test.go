package qrlink

import (
	"bytes"
	"testing"
)

func TestTableURL_RoundTrip(t *testing.T) {
	link, err := TableURL("https://comanda.example.com/", 1, "7")
	if err != nil {
		t.Fatalf("TableURL failed: %v", err)
	}

	tenantID, tableID, err := ParseTableURL(link)
	if err != nil {
		t.Fatalf("ParseTableURL(%q) failed: %v", link, err)
	}
	if tenantID != 1 {
		t.Errorf("tenant id = %d, want 1", tenantID)
	}
	if tableID != "7" {
		t.Errorf("table id = %q, want \"7\"", tableID)
	}
}

func TestTableURL_FreeFormTableID(t *testing.T) {
	// Table ids are caller-supplied strings, including ones needing escaping.
	link, err := TableURL("https://comanda.example.com", 3, "varanda 2")
	if err != nil {
		t.Fatalf("TableURL failed: %v", err)
	}

	tenantID, tableID, err := ParseTableURL(link)
	if err != nil {
		t.Fatalf("ParseTableURL failed: %v", err)
	}
	if tenantID != 3 || tableID != "varanda 2" {
		t.Errorf("round trip = (%d, %q), want (3, \"varanda 2\")", tenantID, tableID)
	}
}

func TestParseTableURL_Errors(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{"missing cid", "https://x.example.com/?mesa=5"},
		{"missing mesa", "https://x.example.com/?cid=1"},
		{"non-numeric cid", "https://x.example.com/?cid=abc&mesa=5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseTableURL(tt.link); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("7"); got != "qr_mesa_7.png" {
		t.Errorf("FileName = %q, want qr_mesa_7.png", got)
	}
}

func TestEncodePNG(t *testing.T) {
	png, err := EncodePNG("https://comanda.example.com", 1, "7")
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG magic bytes at start of image")
	}
}
