package urlutil

import "testing"

// TestNormalize verifies canonicalization rules.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lower-cases scheme and host",
			in:   "HTTP://Example.com/a/",
			want: "http://example.com/a",
		},
		{
			name: "root slash is preserved",
			in:   "https://x.com/",
			want: "https://x.com/",
		},
		{
			name: "fragment is removed",
			in:   "https://x.com/page#section",
			want: "https://x.com/page",
		},
		{
			name: "query string untouched",
			in:   "https://x.com/search?Q=Foo&b=2",
			want: "https://x.com/search?Q=Foo&b=2",
		},
		{
			name: "path case untouched",
			in:   "https://x.com/About/Us",
			want: "https://x.com/About/Us",
		},
		{
			name: "only one trailing slash stripped",
			in:   "https://x.com/a//",
			want: "https://x.com/a/",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
		{
			name: "unparsable input returned unchanged",
			in:   "http://example.com/%zz\x7f",
			want: "http://example.com/%zz\x7f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}

			// Idempotency must hold for every input.
			if again := Normalize(got); again != got {
				t.Errorf("Normalize is not idempotent: %q -> %q -> %q", tt.in, got, again)
			}
		})
	}
}

// TestResolve verifies relative resolution and href rejection.
func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		href   string
		want   string
		wantOK bool
	}{
		{
			name:   "relative path",
			base:   "https://example.com/docs/index.html",
			href:   "guide.pdf",
			want:   "https://example.com/docs/guide.pdf",
			wantOK: true,
		},
		{
			name:   "absolute href wins over base",
			base:   "https://example.com/",
			href:   "https://other.com/page/",
			want:   "https://other.com/page",
			wantOK: true,
		},
		{
			name:   "root-relative path",
			base:   "https://example.com/deep/nested/page",
			href:   "/top",
			want:   "https://example.com/top",
			wantOK: true,
		},
		{
			name: "bare fragment rejected",
			base: "https://example.com/",
			href: "#main",
		},
		{
			name: "javascript pseudo-protocol rejected",
			base: "https://example.com/",
			href: "javascript:void(0)",
		},
		{
			name: "empty href rejected",
			base: "https://example.com/",
			href: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Resolve(tt.base, tt.href)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q, %q) ok = %v, want %v", tt.base, tt.href, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
			}
		})
	}
}
