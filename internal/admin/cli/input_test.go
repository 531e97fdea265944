package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("عنوان المقال\n"), "Title", &out)
	if err != nil || got != "عنوان المقال" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Title", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetOptionalText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetOptionalText(rdr("\n"), "Title", "current", &out)
	if err != nil || got != "current" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	got, err = GetOptionalText(rdr("replacement\n"), "Title", "current", &out)
	if err != nil || got != "replacement" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("سطر أول\nسطر ثان\n\n"), "Content", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "سطر أول\nسطر ثان"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	if _, err := GetPassword(&out); err == nil {
		t.Fatal("expected error")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  Spaces ", "trimmed-spaces"},
		{"ريادة الأعمال", "ريادة-الأعمال"},
		{"a_b/c", "a-b-c"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
