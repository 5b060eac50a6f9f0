package utils

import (
	"strings"
	"testing"
)

func TestRedactSource(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"kc_house_data.csv", "kc_house_data.csv"},
		{"/data/kc house data.csv", "/data/kc house data.csv"},
		{"s3://housing/kc.csv", "s3://housing/kc.csv"},
		{"sqlite:///tmp/sales.db", "sqlite:///tmp/sales.db"},
		{"postgres://reader:s3cretpw@db:5432/sales?sslmode=disable", "postgres://reader:xxxxx@db:5432/sales?sslmode=disable"},
		{"postgres://reader@db/sales", "postgres://reader@db/sales"},
	}

	for _, tt := range tests {
		if got := RedactSource(tt.source); got != tt.want {
			t.Errorf("RedactSource(%q) = %q; want %q", tt.source, got, tt.want)
		}
	}
}

func TestRedactSourceUnparseable(t *testing.T) {
	got := RedactSource("postgres://reader:pw%zz@db/sales")
	if strings.Contains(got, "pw") {
		t.Errorf("unparseable source leaked credentials: %q", got)
	}
}
