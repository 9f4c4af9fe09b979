package sanitize

import "testing"

func TestPlainText(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                                   "",
		"   ":                                "",
		"Thanks, we fixed it":                "Thanks, we fixed it",
		"<b>Hello</b> there":                 "Hello there",
		"<script>alert('x')</script>Welcome": "Welcome",
		"Tom & Jerry":                        "Tom & Jerry",
		"  <p>padded</p>  ":                  "padded",
	}
	for input, expected := range cases {
		if got := PlainText(input); got != expected {
			t.Fatalf("expected %q for %q, got %q", expected, input, got)
		}
	}
}
