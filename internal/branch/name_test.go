package branch

import "testing"

func TestFormat(t *testing.T) {
	t.Parallel()

	got := Format("alice", "feat", "JIRA-123", "Add new feature")
	want := "alice/feat/JIRA-123/add-new-feature"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormat_IdempotentOnNormalizedInput(t *testing.T) {
	t.Parallel()

	first := Format("alice", "feat", "ABC-1", "already-normalized")
	c := Components{Username: "alice", Type: "feat", Jira: "ABC-1", Description: "already-normalized"}
	second := Format(c.Username, c.Type, c.Jira, c.Description)
	if first != second {
		t.Errorf("Format not idempotent: %q vs %q", first, second)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	r := DefaultRules()

	t.Run("full conventional name", func(t *testing.T) {
		c, ok := r.Parse("alice/feat/ABC-123/description")
		if !ok {
			t.Fatal("Parse = !ok for conventional branch name")
		}
		want := Components{Username: "alice", Type: "feat", Jira: "ABC-123", Description: "description"}
		if c != want {
			t.Errorf("Parse = %+v, want %+v", c, want)
		}
	})

	t.Run("missing issue id segment", func(t *testing.T) {
		if _, ok := r.Parse("bob/fix/description"); ok {
			t.Error("Parse = ok for branch missing the issue id segment")
		}
	})

	t.Run("unconventional name", func(t *testing.T) {
		if _, ok := r.Parse("invalidbranchname"); ok {
			t.Error("Parse = ok for unconventional branch name")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		c, ok := r.Parse("Alice/FEAT/abc-123/Description")
		if !ok {
			t.Fatal("Parse = !ok for mixed-case branch name")
		}
		if c.Jira != "abc-123" {
			t.Errorf("Parse jira = %q, want the raw capture %q", c.Jira, "abc-123")
		}
	})
}

// For values accepted by the individual field patterns,
// Parse(Format(u, t, j, d)) recovers exactly (u, t, j, d) when the
// description is already lowercase and dash-normalized.
func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()
	r := DefaultRules()

	cases := []Components{
		{"alice", "feat", "ABC-123", "add-new-feature"},
		{"bob_2", "hotfix", "XY-1", "b"},
		{"a-b", "chore", "PROJQ-99999", "x0-9-z"},
	}
	for _, want := range cases {
		for _, f := range Fields {
			var v string
			switch f {
			case FieldUsername:
				v = want.Username
			case FieldType:
				v = want.Type
			case FieldJira:
				v = want.Jira
			case FieldDescription:
				v = want.Description
			}
			if !r.Valid(f, v) {
				t.Fatalf("test case %+v: %s %q does not validate", want, f, v)
			}
		}

		name := Format(want.Username, want.Type, want.Jira, want.Description)
		got, ok := r.Parse(name)
		if !ok {
			t.Errorf("Parse(%q) = !ok", name)
			continue
		}
		if got != want {
			t.Errorf("Parse(Format(%+v)) = %+v", want, got)
		}
	}
}

func TestScan(t *testing.T) {
	t.Parallel()
	r := DefaultRules()

	tests := []struct {
		name     string
		branch   string
		wantJira string
		wantType string
	}{
		{"conventional name", "alice/feat/ABC-123/description", "ABC-123", "feat"},
		{"missing issue id", "bob/fix/description", "", "fix"},
		{"no match at all", "invalidbranchname", "", ""},
		{"issue id embedded mid-string", "wip-ABC-123-experiment", "ABC-123", ""},
		{"type needs slash brackets", "feat-something", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jira, typ := r.Scan(tt.branch)
			if jira != tt.wantJira || typ != tt.wantType {
				t.Errorf("Scan(%q) = (%q, %q), want (%q, %q)",
					tt.branch, jira, typ, tt.wantJira, tt.wantType)
			}
		})
	}
}

// Parse and Scan deliberately use different matching strategies and may
// disagree on malformed input; these cases pin the expected disagreement.
func TestParseAndScanDisagree(t *testing.T) {
	t.Parallel()
	r := DefaultRules()

	branch := "bob/fix/description"
	if _, ok := r.Parse(branch); ok {
		t.Error("Parse should reject a branch missing its issue id segment")
	}
	if _, typ := r.Scan(branch); typ != "fix" {
		t.Errorf("Scan type = %q, want %q", typ, "fix")
	}
}
