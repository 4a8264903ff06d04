package deps

import (
	"reflect"
	"testing"
)

func TestMergerRecordNew(t *testing.T) {
	m := NewMerger()
	m.Record("fmt", "9.1", "vcpkg.json")

	rec, ok := m.Result().Get("fmt")
	if !ok {
		t.Fatal("record for fmt not found")
	}
	if rec.Version != "9.1" {
		t.Errorf("Version = %q, want %q", rec.Version, "9.1")
	}
	if !reflect.DeepEqual(rec.Locations, []string{"vcpkg.json"}) {
		t.Errorf("Locations = %v, want [vcpkg.json]", rec.Locations)
	}
}

func TestMergerIdempotent(t *testing.T) {
	once := NewMerger()
	once.Record("zlib", "1.2.11", "src/zconf.h")

	twice := NewMerger()
	twice.Record("zlib", "1.2.11", "src/zconf.h")
	twice.Record("zlib", "1.2.11", "src/zconf.h")

	if !reflect.DeepEqual(once.Result().Records(), twice.Result().Records()) {
		t.Errorf("recording twice = %v, want %v", twice.Result().Records(), once.Result().Records())
	}
	rec, _ := twice.Result().Get("zlib")
	if len(rec.Locations) != 1 {
		t.Errorf("len(Locations) = %d, want 1", len(rec.Locations))
	}
}

func TestMergerVersionMonotonic(t *testing.T) {
	forward := NewMerger()
	forward.Record("boost", "", "a.cpp")
	forward.Record("boost", "2.0", "b.cpp")

	reverse := NewMerger()
	reverse.Record("boost", "2.0", "b.cpp")
	reverse.Record("boost", "", "a.cpp")

	want := Record{Name: "boost", Version: "2.0", Locations: []string{"a.cpp", "b.cpp"}}
	for name, m := range map[string]*Merger{"forward": forward, "reverse": reverse} {
		got, _ := m.Result().Get("boost")
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %+v, want %+v", name, got, want)
		}
	}
}

func TestMergerFirstVersionWins(t *testing.T) {
	m := NewMerger()
	m.Record("openssl", "1.1", "CMakeLists.txt")
	m.Record("openssl", "3.0", "conanfile.txt")

	rec, _ := m.Result().Get("openssl")
	if rec.Version != "1.1" {
		t.Errorf("Version = %q, want %q", rec.Version, "1.1")
	}
	if len(rec.Locations) != 2 {
		t.Errorf("len(Locations) = %d, want 2", len(rec.Locations))
	}
}

func TestMergerCaseSensitive(t *testing.T) {
	// CMake reports OpenSSL while includes report openssl. They stay
	// separate records; folding case would merge unrelated spellings.
	m := NewMerger()
	m.Record("OpenSSL", "1.1", "CMakeLists.txt")
	m.Record("openssl", "", "include/tls.h")

	if got := m.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	want := []string{"OpenSSL", "openssl"}
	if got := m.Result().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestMergerAdd(t *testing.T) {
	m := NewMerger()
	m.Add("src/main.cpp",
		Detection{Name: "boost"},
		Detection{Name: "zlib", Version: "1.3"},
	)
	m.Add("vcpkg.json", Detection{Name: "boost", Version: "1.75"})

	records := m.Result().Records()
	want := []Record{
		{Name: "boost", Version: "1.75", Locations: []string{"src/main.cpp", "vcpkg.json"}},
		{Name: "zlib", Version: "1.3", Locations: []string{"src/main.cpp"}},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("Records() = %+v, want %+v", records, want)
	}
}

func TestResultEmpty(t *testing.T) {
	r := NewMerger().Result()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if len(r.Records()) != 0 {
		t.Errorf("Records() = %v, want empty", r.Records())
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestNewResult(t *testing.T) {
	r := NewResult(
		Record{Name: "fmt", Locations: []string{"b.cpp", "a.cpp", "a.cpp"}},
		Record{Name: "fmt", Version: "9.1", Locations: []string{"vcpkg.json"}},
		Record{Name: "bare"},
	)

	fmtRec, _ := r.Get("fmt")
	want := Record{Name: "fmt", Version: "9.1", Locations: []string{"a.cpp", "b.cpp", "vcpkg.json"}}
	if !reflect.DeepEqual(fmtRec, want) {
		t.Errorf("fmt = %+v, want %+v", fmtRec, want)
	}

	bare, ok := r.Get("bare")
	if !ok {
		t.Fatal("bare record missing")
	}
	if len(bare.Locations) != 0 {
		t.Errorf("bare.Locations = %v, want empty", bare.Locations)
	}
}
