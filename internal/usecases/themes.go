package usecases

import (
	"regexp"
	"sort"
	"strings"

	"focus_forge/internal/models"
)

// ThemeRule tags a note with a theme when Pattern matches.
type ThemeRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Keywords match whole words; a trailing * turns one into a prefix.
var defaultThemeKeywords = map[string][]string{
	"sleep":         {"sleep*", "slept", "tired", "exhausted", "insomnia", "nap*", "rest"},
	"work":          {"work", "working", "job", "boss", "meeting*", "deadline*", "project*", "email*", "office"},
	"anxiety":       {"anxious", "anxiety", "worr*", "nervous", "panic*", "stress*", "dread*"},
	"overwhelm":     {"overwhelm*", "too much", "swamped", "drowning", "behind", "chaos"},
	"focus":         {"focus*", "distract*", "procrastinat*", "scattered", "hyperfocus*", "adhd"},
	"energy":        {"energy", "energi*", "sluggish", "drained", "motivat*", "lazy"},
	"relationships": {"friend*", "family", "partner", "mom", "dad", "kid*", "lonely", "alone"},
	"exercise":      {"exercis*", "workout*", "gym", "run", "running", "walk*", "yoga", "swim*"},
	"gratitude":     {"grateful", "thankful", "gratitude", "appreciat*"},
}

func compileKeywords(keywords []string) *regexp.Regexp {
	parts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.HasSuffix(kw, "*") {
			parts = append(parts, regexp.QuoteMeta(strings.TrimSuffix(kw, "*"))+`\w*`)
		} else {
			parts = append(parts, regexp.QuoteMeta(kw))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(parts, "|") + `)\b`)
}

// ThemeRules merges overrides into the default families. An override with
// no keywords removes that family.
func ThemeRules(overrides map[string][]string) []ThemeRule {
	merged := make(map[string][]string, len(defaultThemeKeywords))
	for name, kws := range defaultThemeKeywords {
		merged[name] = kws
	}
	for name, kws := range overrides {
		merged[strings.ToLower(name)] = kws
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]ThemeRule, 0, len(names))
	for _, name := range names {
		if re := compileKeywords(merged[name]); re != nil {
			rules = append(rules, ThemeRule{Name: name, Pattern: re})
		}
	}
	return rules
}

// ExtractThemes counts each theme at most once per note and returns the top
// themes by count, ties broken by name.
func ExtractThemes(notes []string, rules []ThemeRule, top int) []models.ThemeCount {
	counts := make(map[string]int)
	for _, note := range notes {
		if strings.TrimSpace(note) == "" {
			continue
		}
		for _, rule := range rules {
			if rule.Pattern.MatchString(note) {
				counts[rule.Name]++
			}
		}
	}

	themes := make([]models.ThemeCount, 0, len(counts))
	for name, n := range counts {
		themes = append(themes, models.ThemeCount{Theme: name, Count: n})
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Count != themes[j].Count {
			return themes[i].Count > themes[j].Count
		}
		return themes[i].Theme < themes[j].Theme
	})

	if top > 0 && len(themes) > top {
		themes = themes[:top]
	}
	return themes
}
