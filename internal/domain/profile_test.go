package domain

import "testing"

func TestImpactLevels(t *testing.T) {
	tests := []struct {
		points       int
		wantLevel    string
		wantToNext   int
		wantProgress float64
	}{
		{0, "Intern", 50, 0},
		{10, "Intern", 40, 20},
		{50, "Junior Contributor", 100, 0},
		{100, "Junior Contributor", 50, 50},
		{299, "Senior Helper", 1, 99.33333333333333},
		{300, "Lead Navigator", 200, 0},
		{500, "Market Oracle", 0, 100},
		{9000, "Market Oracle", 0, 100},
	}

	for _, tt := range tests {
		if got := ImpactLevelFor(tt.points).Name; got != tt.wantLevel {
			t.Errorf("ImpactLevelFor(%d) = %s, want %s", tt.points, got, tt.wantLevel)
		}
		if got := PointsToNextLevel(tt.points); got != tt.wantToNext {
			t.Errorf("PointsToNextLevel(%d) = %d, want %d", tt.points, got, tt.wantToNext)
		}
		if got := ProgressToNextLevel(tt.points); got-tt.wantProgress > 1e-9 || tt.wantProgress-got > 1e-9 {
			t.Errorf("ProgressToNextLevel(%d) = %v, want %v", tt.points, got, tt.wantProgress)
		}
	}
}

func TestUserProfileShorts(t *testing.T) {
	p := UserProfile{UserID: "u1"}

	p = p.WithShort("Acme").WithShort("acme").WithShort("  ")
	if len(p.ShortedCompanies) != 1 {
		t.Fatalf("ShortedCompanies = %v, want one entry", p.ShortedCompanies)
	}
	if !p.HasShorted("ACME") {
		t.Error("HasShorted(ACME) = false, want true")
	}

	orig := p
	p = p.WithoutShort("acme")
	if p.HasShorted("Acme") {
		t.Error("WithoutShort did not remove company")
	}
	if !orig.HasShorted("Acme") {
		t.Error("WithoutShort modified the original profile")
	}
}
