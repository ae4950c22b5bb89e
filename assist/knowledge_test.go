package assist

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nmoreau/foliobot/portfolio"
)

func sampleSnapshot() *portfolio.Snapshot {
	return &portfolio.Snapshot{
		Hero: portfolio.Hero{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Location: "London",
		},
		Contact: portfolio.Contact{
			Email: "ada@example.com",
			Phone: "+44 123",
		},
		Skills: []portfolio.Skill{
			{Name: "Go", Level: 90},
			{Name: "Rust", Level: 80},
			{Name: "TypeScript", Level: 75},
			{Name: "Docker", Level: 70},
			{Name: "Postgres", Level: 65},
		},
		Experience: []portfolio.Experience{
			{Role: "Engineer", Company: "Acme", Period: "2020-2023"},
			{Role: "Analyst", Company: "Babbage & Co", Period: "2017-2020"},
		},
		Projects: []portfolio.Project{
			{Title: "Analytical Engine"},
			{Title: "Difference Engine"},
		},
		Education: []portfolio.Education{
			{Degree: "BSc Mathematics", Institution: "UCL", Year: "2019"},
		},
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	snap := sampleSnapshot()
	first := Build(snap)
	second := Build(snap)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Build() not idempotent:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestBuildCoversAllTopics(t *testing.T) {
	for name, snap := range map[string]*portfolio.Snapshot{
		"nil":   nil,
		"empty": {},
		"full":  sampleSnapshot(),
	} {
		t.Run(name, func(t *testing.T) {
			kb := Build(snap)
			if len(kb) != len(Topics) {
				t.Fatalf("Build() produced %d topics, want %d", len(kb), len(Topics))
			}
			for _, topic := range Topics {
				if kb[topic] == "" {
					t.Errorf("topic %q has empty text", topic)
				}
			}
		})
	}
}

func TestBuildSkillsFormat(t *testing.T) {
	kb := Build(&portfolio.Snapshot{
		Skills: []portfolio.Skill{
			{Name: "Go", Level: 90},
			{Name: "Rust", Level: 80},
		},
	})
	want := "Top skills: Go (90%), Rust (80%)."
	if kb[TopicSkills] != want {
		t.Fatalf("skills text = %q, want %q", kb[TopicSkills], want)
	}
}

func TestBuildSkillsCapsAtEight(t *testing.T) {
	var skills []portfolio.Skill
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		skills = append(skills, portfolio.Skill{Name: name, Level: 50})
	}
	kb := Build(&portfolio.Snapshot{Skills: skills})
	if got := strings.Count(kb[TopicSkills], "%"); got != 8 {
		t.Fatalf("skills entry count = %d, want 8", got)
	}
	if strings.Contains(kb[TopicSkills], "i (") {
		t.Fatalf("ninth skill leaked into %q", kb[TopicSkills])
	}
}

func TestBuildContactFormatting(t *testing.T) {
	tests := []struct {
		name string
		snap *portfolio.Snapshot
		want string
	}{
		{
			name: "email and phone with contact location",
			snap: &portfolio.Snapshot{
				Contact: portfolio.Contact{Email: "a@b.c", Phone: "+1 555", Location: "Berlin"},
			},
			want: "Contact: a@b.c | +1 555. Location: Berlin",
		},
		{
			name: "email only falls back to hero location",
			snap: &portfolio.Snapshot{
				Hero:    portfolio.Hero{Location: "Lisbon"},
				Contact: portfolio.Contact{Email: "a@b.c"},
			},
			want: "Contact: a@b.c. Location: Lisbon",
		},
		{
			name: "phone only without any location",
			snap: &portfolio.Snapshot{
				Contact: portfolio.Contact{Phone: "+1 555"},
			},
			want: "Contact: +1 555. Location: N/A",
		},
		{
			name: "hero email counts as contact info",
			snap: &portfolio.Snapshot{
				Hero: portfolio.Hero{Email: "hero@b.c"},
			},
			want: "Contact: hero@b.c. Location: N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := Build(tt.snap)
			if kb[TopicContact] != tt.want {
				t.Fatalf("contact text = %q, want %q", kb[TopicContact], tt.want)
			}
		})
	}
}

func TestBuildAvailabilityUsesEmail(t *testing.T) {
	kb := Build(sampleSnapshot())
	want := "Reach out via ada@example.com for opportunities."
	if kb[TopicAvailability] != want {
		t.Fatalf("availability text = %q, want %q", kb[TopicAvailability], want)
	}
}

func TestBuildLocationPriority(t *testing.T) {
	contactLoc := Build(&portfolio.Snapshot{
		Hero:    portfolio.Hero{Location: "Lisbon"},
		Contact: portfolio.Contact{Location: "Berlin"},
	})
	if contactLoc[TopicLocation] != "Berlin" {
		t.Fatalf("contact location should win, got %q", contactLoc[TopicLocation])
	}

	heroLoc := Build(&portfolio.Snapshot{Hero: portfolio.Hero{Location: "Lisbon"}})
	if heroLoc[TopicLocation] != "Lisbon" {
		t.Fatalf("hero location fallback, got %q", heroLoc[TopicLocation])
	}
}

func TestBuildStrengthsCapsAtFour(t *testing.T) {
	kb := Build(sampleSnapshot())
	want := "Strengths include Go, Rust, TypeScript, Docker."
	if kb[TopicStrengths] != want {
		t.Fatalf("strengths text = %q, want %q", kb[TopicStrengths], want)
	}
}

func TestBuildTechnologiesListsAllSkillNames(t *testing.T) {
	kb := Build(sampleSnapshot())
	want := "Technologies: Go, Rust, TypeScript, Docker, Postgres."
	if kb[TopicTechnologies] != want {
		t.Fatalf("technologies text = %q, want %q", kb[TopicTechnologies], want)
	}
}
