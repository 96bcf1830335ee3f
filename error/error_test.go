package error

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSourceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src")
	err := os.WriteFile(path, []byte("a b\nc d\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}

	e := &SourceError{
		Cause:      errors.New("unexpected input"),
		FilePath:   path,
		SourceName: "src",
		Row:        2,
		Col:        3,
	}
	want := "src: 2:3: error: unexpected input\n    c d"
	if e.Error() != want {
		t.Fatalf("unexpected message: want: %#v, got: %#v", want, e.Error())
	}
}

func TestSourceError_withoutPosition(t *testing.T) {
	e := &SourceError{
		Cause: errors.New("unexpected input"),
	}
	want := "error: unexpected input"
	if e.Error() != want {
		t.Fatalf("unexpected message: want: %#v, got: %#v", want, e.Error())
	}
}
