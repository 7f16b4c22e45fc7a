package resub

import (
	"errors"
	"testing"
)

func TestReplaceAllString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		repl    string
		want    string
	}{
		// Literal replacement (no escapes)
		{`\d+`, "age: 42", "XX", "age: XX"},
		// Capture group replacement
		{`(\w+)@(\w+)\.(\w+)`, "user@example.com", `\1 at \2 dot \3`, "user at example dot com"},
		// \0 (entire match)
		{`\d+`, "age: 42", `[\0]`, "age: [42]"},
		// Multiple replacements
		{`(\d+)`, "1 2 3", `(\1)`, "(1) (2) (3)"},
		// $ has no special meaning
		{`\d+`, "price: 10", "$1", "price: $1"},
		// Out-of-range group stays literal
		{`\d+`, "age: 42", `\1`, `age: \1`},
		// Named groups in both bracket styles
		{`(?P<year>\d{4})-(?P<month>\d{2})`, "due 2024-05", `\g{month}/\g<year>`, "due 05/2024"},
		// Numbered group in brackets
		{`(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)(k)`, "abcdefghijk", `\g{11}\g<10>\1`, "kja"},
		// Case changes
		{`(\w+) (\w+)`, "john smith", `\u\1 \U\2\E!`, "John SMITH!"},
		{`\w+`, "one two", `\U\0`, "ONE TWO"},
		// Escapes
		{`,`, "a,b", `\t`, "a\tb"},
		{`x`, "axb", `\x{20AC}`, "a€b"},
		// Unmatched optional group
		{`(a)|(b)`, "b", `[\1\2]`, "[b]"},
		// No match
		{`\d+`, "abc", "X", "abc"},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got := re.ReplaceAllString(tt.input, tt.repl)
		if got != tt.want {
			t.Errorf("ReplaceAllString(%q, %q, %q) = %q, want %q",
				tt.pattern, tt.input, tt.repl, got, tt.want)
		}
	}
}

func TestReplaceAll(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)`)
	got := string(re.ReplaceAll([]byte("a@b c@d"), []byte(`\2@\1`)))
	want := "b@a d@c"
	if got != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestReplaceCount(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
		count int
	}{
		{"1 2 3", -1, "<1> <2> <3>", 3},
		{"1 2 3", 2, "<1> <2> 3", 2},
		{"1 2 3", 1, "<1> 2 3", 1},
		{"1 2 3", 0, "1 2 3", 0},
		{"a b c", -1, "a b c", 0},
	}

	re := MustCompile(`\d+`)
	for _, tt := range tests {
		got, count, err := re.Replace(tt.input, `<\0>`, tt.n)
		if err != nil {
			t.Fatalf("Replace(%q, %d): %v", tt.input, tt.n, err)
		}
		if got != tt.want || count != tt.count {
			t.Errorf("Replace(%q, %d) = %q, %d, want %q, %d",
				tt.input, tt.n, got, count, tt.want, tt.count)
		}
	}
}

func TestReplaceEmptyMatches(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		repl    string
		n       int
		want    string
		count   int
	}{
		{`\b`, "ab cd", "|", -1, "|ab| |cd|", 4},
		{`a*`, "baaac", `<\0>`, -1, "<>b<aaa>c<>", 3},
		{`x*`, "abc", "-", -1, "-a-b-c-", 4},
		{`x*`, "abc", "-", 2, "-a-bc", 2},
		{`(a*)`, "baaac", `[\1]`, -1, "[]b[aaa]c[]", 3},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got, count, err := re.Replace(tt.input, tt.repl, tt.n)
		if err != nil {
			t.Fatalf("Replace(%q, %q): %v", tt.pattern, tt.input, err)
		}
		if got != tt.want || count != tt.count {
			t.Errorf("%q.Replace(%q, %q, %d) = %q, %d, want %q, %d",
				tt.pattern, tt.input, tt.repl, tt.n, got, count, tt.want, tt.count)
		}
	}
}

func TestReplaceMaxReplacements(t *testing.T) {
	config := DefaultConfig()
	config.MaxReplacements = 2
	re, err := CompileWithConfig(`\d`, config)
	if err != nil {
		t.Fatalf("CompileWithConfig: %v", err)
	}

	got, count, err := re.Replace("12345", "x", -1)
	if err != nil || got != "xx345" || count != 2 {
		t.Errorf("Replace = %q, %d, %v, want %q, 2, nil", got, count, err, "xx345")
	}

	got, count, _ = re.Replace("12345", "x", 1)
	if got != "x2345" || count != 1 {
		t.Errorf("Replace(n=1) = %q, %d, want %q, 1", got, count, "x2345")
	}
}

func TestReplaceInvalidRegex(t *testing.T) {
	var zero Regex
	var nilRe *Regex

	for _, re := range []*Regex{&zero, nilRe} {
		got, count, err := re.Replace("abc", "x", -1)
		if !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("Replace on unusable Regex: err = %v, want ErrInvalidPattern", err)
		}
		if got != "abc" || count != 0 {
			t.Errorf("Replace on unusable Regex = %q, %d, want %q, 0", got, count, "abc")
		}
		if got := re.ReplaceAllString("abc", "x"); got != "abc" {
			t.Errorf("ReplaceAllString on unusable Regex = %q, want %q", got, "abc")
		}
	}
}

func TestExpand(t *testing.T) {
	re := MustCompile(`(?P<user>\w+)@(?P<host>\w+)`)
	src := "mail: user@example"
	match := re.FindStringSubmatchIndex(src)
	if match == nil {
		t.Fatal("FindStringSubmatchIndex returned nil")
	}

	got := string(re.Expand([]byte("-> "), `\g{host} \U\g{user}`, src, match))
	want := "-> example USER"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}

	var nilRe *Regex
	if got := nilRe.Expand([]byte("keep"), `\0`, src, match); string(got) != "keep" {
		t.Errorf("Expand on nil Regex = %q, want %q", got, "keep")
	}
}

func TestSearchModes(t *testing.T) {
	tests := []struct {
		mode    SearchMode
		pattern string
		input   string
		repl    string
		want    string
	}{
		{ModeRegex, `a.b`, "a.b axb A.B", "-", "- - A.B"},
		{ModeNormal, `a.b`, "a.b axb A.B", "-", "- axb -"},
		{ModeCaseSensitive, `a.b`, "a.b axb A.B", "-", "- axb A.B"},
		{ModeNormal, `(x)`, "(X) x", `[\0]`, "[(X)] x"},
		{ModeCaseSensitive, `\d`, `\d 1`, "D", "D 1"},
	}

	for _, tt := range tests {
		config := DefaultConfig()
		config.Mode = tt.mode
		re, err := CompileWithConfig(tt.pattern, config)
		if err != nil {
			t.Fatalf("CompileWithConfig(%q, %v): %v", tt.pattern, tt.mode, err)
		}
		got := re.ReplaceAllString(tt.input, tt.repl)
		if got != tt.want {
			t.Errorf("%v: ReplaceAllString(%q, %q, %q) = %q, want %q",
				tt.mode, tt.pattern, tt.input, tt.repl, got, tt.want)
		}
	}
}

func TestSubexp(t *testing.T) {
	re := MustCompile(`(?P<year>\d{4})-(?P<month>\d{2})-(\d{2})`)

	if got := re.NumSubexp(); got != 3 {
		t.Errorf("NumSubexp() = %d, want 3", got)
	}

	tests := []struct {
		name string
		want int
	}{
		{"year", 1},
		{"month", 2},
		{"day", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := re.SubexpIndex(tt.name); got != tt.want {
			t.Errorf("SubexpIndex(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}

	var nilRe *Regex
	if nilRe.SubexpIndex("year") != -1 || nilRe.NumSubexp() != 0 || nilRe.SubexpNames() != nil {
		t.Error("nil Regex should report no groups")
	}
}

func TestRegexAccessors(t *testing.T) {
	config := DefaultConfig()
	config.Mode = ModeNormal
	re, err := CompileWithConfig("a.b", config)
	if err != nil {
		t.Fatal(err)
	}

	if got := re.String(); got != "a.b" {
		t.Errorf("String() = %q, want %q", got, "a.b")
	}
	if got := re.Config().Mode; got != ModeNormal {
		t.Errorf("Config().Mode = %v, want %v", got, ModeNormal)
	}
	if !re.IsValid() {
		t.Error("IsValid() = false for compiled Regex")
	}
}
