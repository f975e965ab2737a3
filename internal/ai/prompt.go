package ai

import (
	"fmt"
	"regexp"
	"strings"
)

// Language-learning decks get plain translation pairs instead of Q&A cards.
// Detection is keyword based and intentionally conservative.

var languagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\benglish\s+to\s+\w+`),
	regexp.MustCompile(`(?i)\w+\s+to\s+english\b`),
	regexp.MustCompile(`(?i)\b\w+\s+vocabulary\b`),
	regexp.MustCompile(`(?i)\b\w+\s+translation`),
	regexp.MustCompile(`(?i)learn\s+to\s+speak\s+\w+`),
	regexp.MustCompile(`(?i)\b\w+\s+phrases\b`),
	regexp.MustCompile(`(?i)\b\w+\s+words\b`),
}

var languageNames = []string{
	"spanish", "french", "german", "italian", "portuguese", "russian",
	"chinese", "japanese", "korean", "arabic", "hindi", "indonesian",
	"dutch", "swedish", "norwegian", "danish", "polish", "turkish",
	"hebrew", "thai", "vietnamese", "hungarian", "finnish", "czech",
}

func isLanguageLearning(title, description string) bool {
	content := strings.ToLower(title + " " + description)

	for _, p := range languagePatterns {
		if p.MatchString(content) {
			return true
		}
	}

	hasLanguageName := false
	for _, lang := range languageNames {
		if strings.Contains(content, lang) {
			hasLanguageName = true
			break
		}
	}
	hasLearningContext := strings.Contains(content, "vocabulary") ||
		strings.Contains(content, "translation") ||
		strings.Contains(content, "phrases") ||
		strings.Contains(content, "words")

	return hasLanguageName && hasLearningContext
}

var detectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:learning|learn)\s+(\w+)`),
	regexp.MustCompile(`(?i)english\s+to\s+(\w+)`),
	regexp.MustCompile(`(?i)(\w+)\s+to\s+english`),
	regexp.MustCompile(`(?i)(\w+)\s+vocabulary`),
	regexp.MustCompile(`(?i)(\w+)\s+language`),
	regexp.MustCompile(`(?i)(\w+)\s+translation`),
}

func detectLanguages(title, description string) (source, target string) {
	content := strings.ToLower(title + " " + description)

	for _, p := range detectPatterns {
		match := p.FindStringSubmatch(content)
		if match == nil {
			continue
		}
		detected := capitalizeFirst(match[1])
		switch {
		case strings.Contains(content, "english to"):
			return "English", detected
		case strings.Contains(content, "to english"):
			return detected, "English"
		default:
			return "English", detected
		}
	}
	return "English", "Target Language"
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func buildPrompt(title, description string, count int, difficulty string) string {
	topic := title
	if description != "" {
		topic = title + ": " + description
	}

	if isLanguageLearning(title, description) {
		source, target := detectLanguages(title, description)
		return fmt.Sprintf(`Generate %d flashcards for language learning: %s

For language learning content, create simple translation pairs:
- Front: Word or phrase in %s
- Back: Direct translation in %s
- Difficulty: %s
- Focus on practical, commonly used vocabulary
- No explanations or additional context needed

Requirements:
- Create exactly %d flashcards
- Use direct translations only
- Cover useful everyday vocabulary
- Progress from basic to more complex based on difficulty level

Topic: %s`, count, topic, source, target, difficulty, count, topic)
	}

	return fmt.Sprintf(`Generate %d educational flashcards about: %s

Create effective study cards based on the content:
- Front: Clear questions, terms, or prompts
- Back: Accurate answers or explanations
- Difficulty level: %s
- Cover key concepts and information

Requirements:
- Create exactly %d flashcards
- Make cards appropriate for active recall
- Focus on important concepts and facts
- Ensure accuracy and educational value
- Progress from basic to more advanced based on difficulty

Topic: %s`, count, topic, difficulty, count, topic)
}
