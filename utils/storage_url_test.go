package utils

import "testing"

func TestExtractObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"empty", "", ""},
		{"raw object key", "e1/financials/pack.pdf", "e1/financials/pack.pdf"},
		{"raw key with traversal", "e1/../secrets/key.pem", ""},
		{"gs url", "gs://my-bucket/e1/financials/pack.pdf", "e1/financials/pack.pdf"},
		{"gs url bucket only", "gs://my-bucket", ""},
		{
			"path style gcs url",
			"https://storage.googleapis.com/my-bucket/e1/financials/pack.pdf",
			"e1/financials/pack.pdf",
		},
		{
			"virtual host gcs url",
			"https://my-bucket.storage.googleapis.com/e1/financials/pack.pdf",
			"e1/financials/pack.pdf",
		},
		{
			"query key param",
			"https://cdn.example.com/files?key=e1%2Ffinancials%2Fpack.pdf",
			"e1/financials/pack.pdf",
		},
		{"unrecognized url", "https://example.com/whatever", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractObjectKeyFromURL(tc.url); got != tc.want {
				t.Errorf("ExtractObjectKeyFromURL(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestBuildObjectAccessURLFallsBackToKey(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_BASE_URL", "")
	t.Setenv("GCS_URL", "")
	t.Setenv("GCS_BUCKET", "")
	if got := BuildObjectAccessURL("e1/financials/pack.pdf"); got != "e1/financials/pack.pdf" {
		t.Errorf("BuildObjectAccessURL() = %q", got)
	}
}

func TestBuildObjectAccessURLWithGCSEnv(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_BASE_URL", "")
	t.Setenv("GCS_URL", "storage.googleapis.com")
	t.Setenv("GCS_BUCKET", "my-bucket")
	want := "https://storage.googleapis.com/my-bucket/e1/financials/pack.pdf"
	if got := BuildObjectAccessURL("e1/financials/pack.pdf"); got != want {
		t.Errorf("BuildObjectAccessURL() = %q, want %q", got, want)
	}
}
