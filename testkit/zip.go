package testkit

import (
	"archive/zip"
	"sort"
	"strings"
	"testing"
)

// ZipsEqual fails the test if the two zip archives hold different file
// lists or any matching entry's content CRC differs. Names are compared
// case-sensitively; directory entries are ignored
func ZipsEqual(t testing.TB, calcPath, idealPath string) {
	t.Helper()
	calc, err := zipEntries(calcPath)
	if err != nil {
		t.Fatalf("open %s: %v", calcPath, err)
		return
	}
	ideal, err := zipEntries(idealPath)
	if err != nil {
		t.Fatalf("open %s: %v", idealPath, err)
		return
	}
	calcNames := entryNames(calc)
	idealNames := entryNames(ideal)
	if strings.Join(calcNames, "\n") != strings.Join(idealNames, "\n") {
		t.Fatalf("file lists differ, ideal: %v, calc: %v", idealNames, calcNames)
		return
	}
	for _, name := range calcNames {
		if calc[name] != ideal[name] {
			t.Fatalf("%s CRCs differ, ideal: %d, calc: %d", name, ideal[name], calc[name])
		}
	}
}

// zipEntries maps an archive's file names to the content CRCs recorded in
// its central directory
func zipEntries(path string) (map[string]uint32, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	entries := map[string]uint32{}
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		entries[f.Name] = f.CRC32
	}
	return entries, nil
}

func entryNames(entries map[string]uint32) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
