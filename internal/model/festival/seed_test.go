package festival

import "testing"

func TestSeedLineup(t *testing.T) {
	artists := Seed()
	if len(artists) != 40 {
		t.Fatalf("expected 40 artists, got %d", len(artists))
	}

	ids := make(map[string]bool, len(artists))
	days := make(map[string]int)
	for _, artist := range artists {
		if artist.ID == "" || artist.Name == "" || artist.Stage == "" {
			t.Fatalf("incomplete artist: %+v", artist)
		}
		if ids[artist.ID] {
			t.Fatalf("duplicate artist id %q", artist.ID)
		}
		ids[artist.ID] = true
		days[artist.Day]++
	}

	for _, day := range []string{"Thursday", "Friday", "Saturday", "Sunday"} {
		if days[day] == 0 {
			t.Fatalf("no artists scheduled on %s", day)
		}
	}
}
