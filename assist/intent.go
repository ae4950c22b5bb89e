package assist

import "strings"

// intent pairs a topic with the keywords that select it. The slice order is
// a priority order: a query containing keywords of several topics resolves
// to the first one scanned, so reordering entries changes behavior.
var intents = []struct {
	topic    Topic
	keywords []string
}{
	{TopicSkills, []string{"skill", "technology", "tech", "know", "proficient", "good at", "expertise"}},
	{TopicExperience, []string{"work", "job", "experience", "company", "worked", "career", "employment"}},
	{TopicProjects, []string{"project", "built", "created", "portfolio", "work", "developed"}},
	{TopicEducation, []string{"education", "degree", "study", "university", "learn", "course"}},
	{TopicContact, []string{"contact", "reach", "email", "connect", "get in touch", "hire"}},
	{TopicLocation, []string{"location", "where", "based", "live", "city"}},
	{TopicAvailability, []string{"available", "hire", "hiring", "looking", "job"}},
	{TopicTechnologies, []string{"use", "stack", "tools", "framework", "library"}},
	{TopicStrengths, []string{"strength", "good", "best", "achievement"}},
	{TopicInterests, []string{"interest", "hobby", "passion", "like", "enjoy"}},
}

// FallbackAnswer is returned when no keyword matches the query.
const FallbackAnswer = "I can tell you about skills, experience, projects, education, contact details, location, availability, technologies, strengths, or interests. What would you like to know?"

// Match resolves a free-text query against the knowledge base. Matching is
// case-insensitive substring containment, first topic wins. It always
// returns non-empty text.
func Match(query string, kb KnowledgeBase) string {
	q := strings.ToLower(query)
	for _, in := range intents {
		for _, kw := range in.keywords {
			if strings.Contains(q, kw) {
				return kb[in.topic]
			}
		}
	}
	return FallbackAnswer
}
