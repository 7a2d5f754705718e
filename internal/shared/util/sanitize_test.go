package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "contract.pdf", want: "contract.pdf"},
		{name: "spaces kept", in: "Venue Agreement.pdf", want: "Venue Agreement.pdf"},
		{name: "slash replaced", in: "a/b.pdf", want: "a_b.pdf"},
		{name: "backslash replaced", in: "a\\b.pdf", want: "a_b.pdf"},
		{name: "traversal rejected", in: "../../etc/passwd", wantErr: true},
		{name: "empty rejected", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeFileName(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeFileName(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
