package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nihei9/rpmlicense"
)

func TestTester_Run(t *testing.T) {
	tests := []struct {
		testSrc string
		opts    []rpmlicense.ParserOption
		error   bool
	}{
		{
			testSrc: `
Test
---
GPLv3+ and (ASL 2.0 or MIT)
---
legacy
ASL 2.0
GPLv3+
MIT
`,
		},
		{
			testSrc: `
Test
---
(GPL-1.0-or-later OR Artistic-1.0-Perl) AND MIT
---
spdx
Artistic-1.0-Perl
GPL-1.0-or-later
MIT
`,
		},
		{
			testSrc: `
Test
---
MIT AND (GPL
---
error
`,
		},
		{
			testSrc: `
Test
---
MIT AND GPL
---
error
`,
			error: true,
		},
		{
			testSrc: `
Test
---
MIT AND GPL
---
legacy
GPL
MIT
`,
			error: true,
		},
		{
			testSrc: `
Test
---
MIT AND GPL
---
spdx
MIT
GPL
`,
			error: true,
		},
		{
			testSrc: `
Test
---
MIT AND GPL
---
spdx
GPL
`,
			error: true,
		},
		{
			testSrc: `
Test
---
MIT OR
---
spdx
MIT
`,
			error: true,
		},
		{
			testSrc: `
Test
---
MIT
---
spdx
MIT
`,
		},
		{
			testSrc: `
Test
---
MIT
---
legacy
MIT
`,
			opts: []rpmlicense.ParserOption{
				rpmlicense.Oracle(nil),
			},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			c, err := ParseTestCase(strings.NewReader(tt.testSrc))
			if err != nil {
				t.Fatal(err)
			}
			tester := &Tester{
				Options: tt.opts,
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
					},
				},
			}
			rs := tester.Run()
			if tt.error {
				errOccurred := false
				for _, r := range rs {
					if r.Error != nil {
						errOccurred = true
					}
				}
				if !errOccurred {
					t.Fatal("this test must fail, but it passed")
				}
			} else {
				for _, r := range rs {
					if r.Error != nil {
						t.Fatalf("unexpected error occurred: %v", r)
					}
				}
			}
		})
	}
}

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		src  string
		tc   *TestCase
		fail bool
	}{
		{
			src: `Description
---
ASL 2.0 or MIT
---
legacy

  ASL 2.0
MIT
`,
			tc: &TestCase{
				Description: "Description",
				Source:      "ASL 2.0 or MIT",
				Expected: &Expectation{
					Format:   rpmlicense.FormatLegacy,
					Licenses: []string{"ASL 2.0", "MIT"},
				},
			},
		},
		{
			src: `Description
---
MIT AND
---
error
`,
			tc: &TestCase{
				Description: "Description",
				Source:      "MIT AND",
				Expected: &Expectation{
					Error: true,
				},
			},
		},
		{
			src: `Description
---
MIT
`,
			fail: true,
		},
		{
			src: `Description
---
MIT
---
spdx
---
MIT
`,
			fail: true,
		},
		{
			src: `Description
---
MIT
---
SPDX
MIT
`,
			fail: true,
		},
		{
			src: `Description
---
MIT
---
`,
			fail: true,
		},
		{
			src: `Description
---
MIT AND
---
error
MIT
`,
			fail: true,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			tc, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.fail {
				if err == nil {
					t.Fatal("an error must occur")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tc.Description != tt.tc.Description || tc.Source != tt.tc.Source {
				t.Fatalf("unexpected test case; want: %+v, got: %+v", tt.tc, tc)
			}
			if tc.Expected.Error != tt.tc.Expected.Error || tc.Expected.Format != tt.tc.Expected.Format {
				t.Fatalf("unexpected expectation; want: %+v, got: %+v", tt.tc.Expected, tc.Expected)
			}
			if strings.Join(tc.Expected.Licenses, "\n") != strings.Join(tt.tc.Expected.Licenses, "\n") {
				t.Fatalf("unexpected licenses; want: %q, got: %q", tt.tc.Expected.Licenses, tc.Expected.Licenses)
			}
		})
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	files := []struct {
		path string
		src  string
	}{
		{
			path: "a.txt",
			src:  "A\n---\nMIT\n---\nspdx\nMIT\n",
		},
		{
			path: filepath.Join("sub", "b.txt"),
			src:  "B\n---\nMIT or BSD\n---\nlegacy\nBSD\nMIT\n",
		},
		{
			// The expectation part is missing.
			path: filepath.Join("sub", "c.txt"),
			src:  "C\n---\nMIT\n",
		},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.path)
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(path, []byte(f.src), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}

	cs := ListTestCases(dir)
	if len(cs) != 3 {
		t.Fatalf("unexpected test case count; want: 3, got: %v", len(cs))
	}
	broken := 0
	for _, c := range cs {
		if c.Error != nil {
			broken++
		}
	}
	if broken != 1 {
		t.Fatalf("unexpected broken test case count; want: 1, got: %v", broken)
	}

	rs := (&Tester{Cases: cs}).Run()
	passed := 0
	for _, r := range rs {
		if r.Error == nil {
			passed++
			if !strings.HasPrefix(r.String(), "Passed ") {
				t.Fatalf("unexpected result message: %v", r)
			}
		} else if !strings.HasPrefix(r.String(), "Failed ") {
			t.Fatalf("unexpected result message: %v", r)
		}
	}
	if passed != 2 {
		t.Fatalf("unexpected passed count; want: 2, got: %v", passed)
	}

	missing := ListTestCases(filepath.Join(dir, "missing"))
	if len(missing) != 1 || missing[0].Error == nil {
		t.Fatalf("a missing path must be reported as an error: %+v", missing)
	}
}

func TestTester_Testdata(t *testing.T) {
	cs := ListTestCases("testdata")
	if len(cs) == 0 {
		t.Fatal("no test cases found")
	}
	rs := (&Tester{Cases: cs}).Run()
	for _, r := range rs {
		if r.Error != nil {
			t.Error(r)
		}
	}
}
