package internal

import (
	"testing"
)

func TestNormalizeRegion(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "NA"},
		{in: "eu", want: "EU"},
		{in: " kr ", want: "KR"},
		{in: "LATAM", want: "LATAM"},
		{in: "mars", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeRegion(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeRegion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeRegion(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSecretRecordMap(t *testing.T) {
	r := SecretRecord{SSID: "S1", Sub: "abc123", CLID: "c1"}
	m := r.ToMap()

	if len(m) != 3 {
		t.Errorf("ToMap() should omit empty fields, got %v", m)
	}
	if got := SecretRecordFromMap(m); got != r {
		t.Errorf("SecretRecordFromMap(ToMap()) = %+v, want %+v", got, r)
	}
}

func TestSecretRecordComplete(t *testing.T) {
	tests := []struct {
		name string
		r    SecretRecord
		want bool
	}{
		{name: "both ids", r: SecretRecord{SSID: "S1", Sub: "abc"}, want: true},
		{name: "missing ssid", r: SecretRecord{Sub: "abc"}, want: false},
		{name: "missing sub", r: SecretRecord{SSID: "S1"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{in: "", want: ThemeSystem},
		{in: "Dark", want: ThemeDark},
		{in: "light", want: ThemeLight},
		{in: "neon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTheme(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTheme(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTheme(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
