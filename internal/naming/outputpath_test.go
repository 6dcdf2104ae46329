package naming

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDateStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/data/tenhou/2023/scc20230101.html.gz", "scc20230101.html"},
		{"scc20230101.html.gz", "scc20230101.html"},
		{"scc20230101", "scc20230101"},
		{"relative/dir/scc20091231.html.gz", "scc20091231.html"},
		{".gz", ".gz"},
	}
	for _, tt := range tests {
		if got := DateStem(tt.in); got != tt.want {
			t.Errorf("DateStem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDateStem(t *testing.T) {
	tests := []struct {
		name     string
		stem     string
		wantYear string
		wantDate string
		wantErr  bool
	}{
		{"standard index name", "scc20230101.html", "2023", "20230101.html", false},
		{"no suffix", "scc20091231", "2009", "20091231", false},
		{"exactly seven", "scc2015", "2015", "2015", false},
		{"too short", "scc201", "", "", true},
		{"empty", "", "", "", true},
		{"multibyte prefix counts code points", "天鳳凰2020x", "2020", "2020x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseDateStem(tt.stem)
			if tt.wantErr {
				if !errors.Is(err, ErrShortStem) {
					t.Fatalf("ParseDateStem(%q) error = %v, want ErrShortStem", tt.stem, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateStem(%q): %v", tt.stem, err)
			}
			if p.Year != tt.wantYear || p.Date != tt.wantDate {
				t.Errorf("ParseDateStem(%q) = %q/%q, want %q/%q", tt.stem, p.Year, p.Date, tt.wantYear, tt.wantDate)
			}
			if p.Stem != tt.stem {
				t.Errorf("Stem = %q, want %q", p.Stem, tt.stem)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	p, err := PartitionFor("/in/2023/scc20230101.html.gz")
	if err != nil {
		t.Fatal(err)
	}
	stem := "scc20230101.html"

	got := OutputPath("out", p, "2023010100gm-00a9-0000-5aa0aa8f")
	want := filepath.Join("out", stem[3:7], stem[3:], "2023010100gm-00a9-0000-5aa0aa8f.json")
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
	if dir := OutputDir("out", p); dir != filepath.Dir(got) {
		t.Errorf("OutputDir = %q, want parent of %q", dir, got)
	}
}
