package utils

import "testing"

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Compiler   Design  ", "compiler-design"},
		{"Café au Lait", "cafe-au-lait"},
		{"C++ & Go!", "c-go"},
		{"UPPER", "upper"},
		{"already-slugged", "already-slugged"},
		{"../../etc", "etc"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := GenerateSlug(tc.in); got != tc.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
