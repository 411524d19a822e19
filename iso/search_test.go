package iso

import "testing"

func TestRunGroupsRingAutomorphismsIntoOneLocation(t *testing.T) {
	parent := ring(t, 6, "C")
	query := ring(t, 6, "C")
	s := Run(query, parent, false)
	if s.IsEmpty() {
		t.Fatal("search unexpectedly empty")
	}
	if s.NbLocations() != 1 {
		t.Fatalf("NbLocations() = %d, want 1", s.NbLocations())
	}
	if got := s.NbOrientationsAtLocation(0); got != 12 {
		t.Fatalf("NbOrientationsAtLocation(0) = %d, want 12", got)
	}
	if got := s.NbIsomorphisms(); got != 12 {
		t.Fatalf("NbIsomorphisms() = %d, want 12", got)
	}
}

func TestRunEmptyOnNoMatch(t *testing.T) {
	parent := ring(t, 6, "C")
	query := ring(t, 6, "N")
	s := Run(query, parent, false)
	if !s.IsEmpty() {
		t.Errorf("expected an empty search, got %d locations", s.NbLocations())
	}
}

func TestRunLocationVerticesAreSorted(t *testing.T) {
	parent := ring(t, 6, "C")
	query := ring(t, 6, "C")
	s := Run(query, parent, false)
	loc := s.Locations[0]
	for i := 1; i < len(loc.Vertices); i++ {
		if loc.Vertices[i-1] >= loc.Vertices[i] {
			t.Errorf("location vertices not strictly increasing: %v", loc.Vertices)
		}
	}
}
