package models_test

import (
	"reflect"
	"testing"

	"careerwatch/internal/models"
)

func TestParseInterval(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2 hours", 120},
		{"1 week", 10080},
		{"3 days", 4320},
		{"45 minutes", 45},
		{"1 hour", 60},
		{"90", 90},
		{"6h", 360},
		{"  2 Weeks ", 20160},
		{"garbage", 1440},
		{"", 1440},
		{"0 hours", 1440},
		{"-5 days", 1440},
		{"2 fortnights", 1440},
		{"99999999999999999999 weeks", 1440},
	}
	for _, c := range cases {
		if got := models.ParseInterval(c.in); got != c.want {
			t.Errorf("ParseInterval(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	for _, s := range []string{"high", "Medium", " LOW "} {
		if _, ok := models.ParsePriority(s); !ok {
			t.Errorf("ParsePriority(%q) should be valid", s)
		}
	}
	if _, ok := models.ParsePriority("urgent"); ok {
		t.Error("ParsePriority(\"urgent\") should be invalid")
	}
}

func TestParseJobStatus(t *testing.T) {
	for _, s := range []string{"New", "Seen", "Applied", "Archived"} {
		if _, ok := models.ParseJobStatus(s); !ok {
			t.Errorf("ParseJobStatus(%q) should be valid", s)
		}
	}
	if _, ok := models.ParseJobStatus("new"); ok {
		t.Error("status names are case-sensitive")
	}
}

func TestNormalizeKeywords(t *testing.T) {
	got := models.NormalizeKeywords([]string{" React", "react", "", "Go ", "FRONTEND"})
	want := []string{"react", "go", "frontend"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeKeywords = %v, want %v", got, want)
	}
}
