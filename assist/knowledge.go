// Package assist implements the local conversational assistant: a fixed
// knowledge base built from the portfolio snapshot, keyword intent matching,
// and the conversation state machine behind the chat widget.
package assist

import (
	"fmt"
	"strings"

	"github.com/nmoreau/foliobot/portfolio"
)

// Topic is one of the fixed categories a query can resolve to.
type Topic string

const (
	TopicSkills       Topic = "skills"
	TopicExperience   Topic = "experience"
	TopicProjects     Topic = "projects"
	TopicEducation    Topic = "education"
	TopicContact      Topic = "contact"
	TopicLocation     Topic = "location"
	TopicTechnologies Topic = "technologies"
	TopicAvailability Topic = "availability"
	TopicStrengths    Topic = "strengths"
	TopicInterests    Topic = "interests"
)

// Topics lists every topic in presentation order.
var Topics = []Topic{
	TopicSkills,
	TopicExperience,
	TopicProjects,
	TopicEducation,
	TopicContact,
	TopicLocation,
	TopicTechnologies,
	TopicAvailability,
	TopicStrengths,
	TopicInterests,
}

// KnowledgeBase maps every topic to pre-rendered answer text. It is built
// once per snapshot and never mutated afterwards.
type KnowledgeBase map[Topic]string

const (
	maxSkills    = 8
	maxProjects  = 6
	maxStrengths = 4
)

// Build renders a knowledge base from a portfolio snapshot. It is total:
// missing sections resolve to placeholder text, never an error, and the
// same snapshot always produces identical output.
func Build(snap *portfolio.Snapshot) KnowledgeBase {
	if snap == nil {
		snap = &portfolio.Snapshot{}
	}

	return KnowledgeBase{
		TopicSkills:       buildSkills(snap.Skills),
		TopicExperience:   buildExperience(snap.Experience),
		TopicProjects:     buildProjects(snap.Projects),
		TopicEducation:    buildEducation(snap.Education),
		TopicContact:      buildContact(snap),
		TopicLocation:     buildLocation(snap),
		TopicTechnologies: buildTechnologies(snap.Skills),
		TopicAvailability: buildAvailability(snap),
		TopicStrengths:    buildStrengths(snap.Skills),
		TopicInterests:    "Outside of work: open-source tinkering, good coffee, and learning whatever tool looks interesting next.",
	}
}

func buildSkills(skills []portfolio.Skill) string {
	if len(skills) == 0 {
		return "Skills are not listed yet."
	}
	parts := make([]string, 0, maxSkills)
	for _, s := range skills {
		if len(parts) == maxSkills {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%d%%)", s.Name, s.Level))
	}
	return "Top skills: " + strings.Join(parts, ", ") + "."
}

func buildExperience(entries []portfolio.Experience) string {
	if len(entries) == 0 {
		return "Work experience is not listed yet."
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s at %s (%s)", e.Role, e.Company, e.Period))
	}
	return "Experience: " + strings.Join(parts, "; ") + "."
}

func buildProjects(projects []portfolio.Project) string {
	if len(projects) == 0 {
		return "No projects are listed yet."
	}
	parts := make([]string, 0, maxProjects)
	for _, p := range projects {
		if len(parts) == maxProjects {
			break
		}
		parts = append(parts, p.Title)
	}
	return "Projects include: " + strings.Join(parts, "; ") + "."
}

func buildEducation(entries []portfolio.Education) string {
	if len(entries) == 0 {
		return "Education details are not listed yet."
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s — %s (%s)", e.Degree, e.Institution, e.Year))
	}
	return "Education: " + strings.Join(parts, "; ") + "."
}

func buildContact(snap *portfolio.Snapshot) string {
	email := snap.Contact.Email
	if email == "" {
		email = snap.Hero.Email
	}
	var ways []string
	if email != "" {
		ways = append(ways, email)
	}
	if snap.Contact.Phone != "" {
		ways = append(ways, snap.Contact.Phone)
	}
	if len(ways) == 0 {
		return "Contact details are not available yet."
	}

	location := snap.Contact.Location
	if location == "" {
		location = snap.Hero.Location
	}
	if location == "" {
		location = "N/A"
	}
	return fmt.Sprintf("Contact: %s. Location: %s", strings.Join(ways, " | "), location)
}

func buildLocation(snap *portfolio.Snapshot) string {
	if snap.Contact.Location != "" {
		return snap.Contact.Location
	}
	if snap.Hero.Location != "" {
		return snap.Hero.Location
	}
	return "Location is not set."
}

func buildTechnologies(skills []portfolio.Skill) string {
	if len(skills) == 0 {
		return "The technology list is not available yet."
	}
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return "Technologies: " + strings.Join(names, ", ") + "."
}

func buildAvailability(snap *portfolio.Snapshot) string {
	email := snap.Contact.Email
	if email == "" {
		email = snap.Hero.Email
	}
	if email == "" {
		return "Availability is not specified; check the contact section."
	}
	return fmt.Sprintf("Reach out via %s for opportunities.", email)
}

func buildStrengths(skills []portfolio.Skill) string {
	if len(skills) == 0 {
		return "Strengths are not listed yet."
	}
	names := make([]string, 0, maxStrengths)
	for _, s := range skills {
		if len(names) == maxStrengths {
			break
		}
		names = append(names, s.Name)
	}
	return "Strengths include " + strings.Join(names, ", ") + "."
}
