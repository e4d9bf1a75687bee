// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import "testing"

func TestKeyFileName(t *testing.T) {
	check := func(k Key, want string) {
		t.Helper()
		if got := k.FileName(); got != want {
			t.Errorf("%+v.FileName() = %q, want %q", k, got, want)
		}
	}
	check(Key{Filter: "steroids_int", Budget: 16, Workload: "unif"}, "steroids_int_16_unif.json")
	check(Key{Filter: "memento", Budget: 10, Workload: "osm", Tag: "12"}, "memento_10_osm_12.json")
	check(Key{Filter: "surf", Budget: 20, Workload: "norm", Tag: "string"}, "surf_20_norm_string.json")
}

func TestParseKey(t *testing.T) {
	check := func(name string, want Key) {
		t.Helper()
		got, err := ParseKey(name)
		if err != nil {
			t.Errorf("ParseKey(%q): %v", name, err)
			return
		}
		if got != want {
			t.Errorf("ParseKey(%q) = %+v, want %+v", name, got, want)
		}
		if got.FileName() != name {
			t.Errorf("ParseKey(%q).FileName() = %q", name, got.FileName())
		}
	}
	check("steroids_int_16_unif.json", Key{Filter: "steroids_int", Budget: 16, Workload: "unif"})
	check("memento_expandable_15_unif_short.json", Key{Filter: "memento_expandable", Budget: 15, Workload: "unif", Tag: "short"})
	check("proteus_mistuned_10_books_24.json", Key{Filter: "proteus_mistuned", Budget: 10, Workload: "books", Tag: "24"})

	for _, bad := range []string{"steroids_16.json", "steroids_unif.json", "steroids_16_unif.txt", "16_unif.json"} {
		if k, err := ParseKey(bad); err == nil {
			t.Errorf("ParseKey(%q) = %+v, want error", bad, k)
		}
	}
}

func TestCategoryDir(t *testing.T) {
	for _, c := range Categories {
		got, ok := CategoryOfDir(c.Dir())
		if !ok || got != c {
			t.Errorf("CategoryOfDir(%q) = %q, %v", c.Dir(), got, ok)
		}
	}
	if _, ok := CategoryOfDir("fpr"); ok {
		t.Errorf("CategoryOfDir(fpr) succeeded")
	}
}
