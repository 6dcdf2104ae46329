package index

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

type recordLogger struct {
	warns  []string
	errors []string
}

func (l *recordLogger) Warn(f string, a ...interface{})  { l.warns = append(l.warns, fmt.Sprintf(f, a...)) }
func (l *recordLogger) Error(f string, a ...interface{}) { l.errors = append(l.errors, fmt.Sprintf(f, a...)) }

func row(rule, id string) string {
	return fmt.Sprintf(`00:02 | 4 | %s | <a href="http://tenhou.net/0/?log=%s">牌譜</a> | A(+52.0) B(+8.0) C(-18.0) D(-42.0)`, rule, id)
}

func writeGz(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	for _, l := range lines {
		if _, err := zw.Write([]byte(l + "\n")); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		want    string
		wantErr bool
	}{
		{"attribute form", `attr="id=XYZ123"`, "XYZ123", false},
		{"html link", ` <a href="http://tenhou.net/0/?log=2023010100gm-00a9-0000-5aa0aa8f">牌譜</a> `, "2023010100gm-00a9-0000-5aa0aa8f", false},
		{"second segment only", `x="a=b=c"`, "b", false},
		{"no quotes", `attr=id=XYZ`, "", true},
		{"quoted without equals", `attr="XYZ"`, "", true},
		{"empty", ``, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.field)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractID(%q) error = %v, wantErr %v", tt.field, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractID(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestParseRecord(t *testing.T) {
	rec, ok := ParseRecord(`A|B|四鳳南喰赤|attr="id=XYZ123"`)
	if !ok {
		t.Fatal("four-field line should parse")
	}
	if !rec.Eligible() {
		t.Errorf("rule %q should be eligible", rec.Rule)
	}

	if _, ok := ParseRecord("A|B|四鳳南喰赤"); ok {
		t.Error("three-field line should not parse")
	}

	rec, _ = ParseRecord("a|b|   四鳳南喰赤－  |x")
	if rec.Rule != "四鳳南喰赤－" || !rec.Eligible() {
		t.Errorf("rule should be trimmed and eligible, got %q", rec.Rule)
	}

	for _, rule := range []string{"四鳳東喰赤－", "三鳳南喰赤－", "四特南喰赤－", "x四鳳南喰赤"} {
		rec, _ := ParseRecord("a|b|" + rule + "|x")
		if rec.Eligible() {
			t.Errorf("rule %q should not be eligible", rule)
		}
	}
}

func TestScanIDs_SpecExample(t *testing.T) {
	log := &recordLogger{}
	ids, err := ScanIDs(strings.NewReader(`A|B|四鳳南喰赤|attr="id=XYZ123"`+"\n"), log)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"XYZ123"}) {
		t.Errorf("ids = %v, want [XYZ123]", ids)
	}
}

func TestScanIDs_FiltersAndSkips(t *testing.T) {
	input := strings.Join([]string{
		row("四鳳南喰赤－", "id-1"),
		row("四鳳東喰赤－", "east-game"),
		"short|line",
		"",
		"a|b|四鳳南喰赤|no quotes here",
		row("三鳳南喰赤－", "sanma"),
		row("四鳳南喰赤－", "id-2"),
		row("四鳳南喰赤－", "id-1"),
	}, "\n")

	log := &recordLogger{}
	ids, err := ScanIDs(strings.NewReader(input), log)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"id-1", "id-2", "id-1"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v (order kept, no dedup)", ids, want)
	}
	if len(log.warns) != 1 || !strings.Contains(log.warns[0], "no quotes here") {
		t.Errorf("warns = %v, want one warning for the malformed eligible line", log.warns)
	}
	if len(log.errors) != 0 {
		t.Errorf("errors = %v, want none", log.errors)
	}
}

func TestScanIDs_InvalidUTF8(t *testing.T) {
	input := row("四鳳南喰赤－", "ok") + "\n" + "a|b|\xff\xfe|c\n"
	if _, err := ScanIDs(strings.NewReader(input), &recordLogger{}); err == nil {
		t.Error("invalid UTF-8 should be a file-level error")
	}
}

func TestExtractIDs_GzipFile(t *testing.T) {
	dir := t.TempDir()
	path := writeGz(t, dir, "scc20230101.html.gz",
		row("四鳳南喰赤－", "2023010100gm-00a9-0000-aaaa"),
		row("四般南喰赤－", "2023010100gm-0009-0000-bbbb"),
		row("四鳳南喰赤－", "2023010101gm-00a9-0000-cccc"),
	)

	log := &recordLogger{}
	ids := ExtractIDs(path, log)
	want := []string{"2023010100gm-00a9-0000-aaaa", "2023010101gm-00a9-0000-cccc"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestExtractIDs_FileErrors(t *testing.T) {
	dir := t.TempDir()
	notGzip := filepath.Join(dir, "plain.html.gz")
	if err := os.WriteFile(notGzip, []byte(row("四鳳南喰赤－", "x")), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.html.gz"), notGzip} {
		log := &recordLogger{}
		ids := ExtractIDs(path, log)
		if len(ids) != 0 {
			t.Errorf("ExtractIDs(%s) = %v, want empty", path, ids)
		}
		if len(log.errors) != 1 {
			t.Errorf("ExtractIDs(%s) errors = %v, want one", path, log.errors)
		}
	}
}

func TestExtractIDs_TruncatedGzip(t *testing.T) {
	dir := t.TempDir()
	path := writeGz(t, dir, "scc20230102.html.gz",
		row("四鳳南喰赤－", "a"), row("四鳳南喰赤－", "b"))
	data, _ := os.ReadFile(path)
	if err := os.WriteFile(path, data[:len(data)-6], 0o644); err != nil {
		t.Fatal(err)
	}

	log := &recordLogger{}
	if ids := ExtractIDs(path, log); len(ids) != 0 {
		t.Errorf("truncated archive should yield no IDs, got %v", ids)
	}
	if len(log.errors) != 1 {
		t.Errorf("errors = %v, want one", log.errors)
	}
}
