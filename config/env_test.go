package config

import "testing"

// Every known key must be reachable from a real environment variable, not
// just from .env/app.json, because the loader only scans keys it already
// knows about.
func TestEnvironmentVariablesReachEveryKnownKey(t *testing.T) {
	t.Cleanup(func() {
		// Runs after t.Setenv restored the environment; reload so later
		// tests in this package see defaults again.
		if err := loadFromFiles("no-such-app.json", "no-such.env"); err != nil {
			t.Fatalf("reload defaults: %v", err)
		}
	})

	t.Setenv("S3_BUCKET", "exportaciones")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_KEY", "AKIAEXAMPLE")
	t.Setenv("S3_SECRET", "muy-secreto")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_URL", "https://cdn.example.com")
	t.Setenv("MAX_BODY_BYTES", "1024")

	if err := loadFromFiles("no-such-app.json", "no-such.env"); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := StorageS3Bucket(); got != "exportaciones" {
		t.Errorf("StorageS3Bucket() = %q, want exportaciones", got)
	}
	if got := StorageS3Region(); got != "eu-west-1" {
		t.Errorf("StorageS3Region() = %q, want eu-west-1", got)
	}
	if got := StorageS3Key(); got != "AKIAEXAMPLE" {
		t.Errorf("StorageS3Key() = %q", got)
	}
	if got := StorageS3Secret(); got != "muy-secreto" {
		t.Errorf("StorageS3Secret() = %q", got)
	}
	if got := StorageS3Endpoint(); got != "http://minio:9000" {
		t.Errorf("StorageS3Endpoint() = %q", got)
	}
	if got := StorageS3URL(); got != "https://cdn.example.com" {
		t.Errorf("StorageS3URL() = %q", got)
	}
	if got := Get("MAX_BODY_BYTES", ""); got != "1024" {
		t.Errorf("MAX_BODY_BYTES = %q, want 1024", got)
	}
}

func TestS3RegionDefaultsWhenUnset(t *testing.T) {
	if err := loadFromFiles("no-such-app.json", "no-such.env"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := StorageS3Region(); got != defaultS3Region {
		t.Errorf("StorageS3Region() = %q, want %q", got, defaultS3Region)
	}
}
