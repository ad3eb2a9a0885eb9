package catalog

import "strings"

// Categorize suggests a template category for a custom quest title.
// Matching is case-insensitive: exact title first, then keyword substring.
// It returns "" when nothing matches.
func Categorize(title string) string {
	name := strings.ToLower(strings.TrimSpace(title))
	if name == "" {
		return ""
	}

	if cat, ok := exactTitles[name]; ok {
		return cat
	}

	for _, entry := range keywordMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}
	return ""
}

var exactTitles = map[string]string{
	"code":     CategoryCoding,
	"coding":   CategoryCoding,
	"leetcode": CategoryCoding,
	"study":    CategoryAcademic,
	"homework": CategoryAcademic,
	"revision": CategoryAcademic,
	"gym":      CategoryBody,
	"run":      CategoryBody,
	"walk":     CategoryBody,
	"yoga":     CategoryBody,
	"meditate": CategoryMind,
	"journal":  CategoryMind,
	"read":     CategoryMind,
	"vlog":     CategoryRealLife,
	"sleep":    CategoryRhythm,
	"wake up":  CategoryRhythm,
	"bedtime":  CategoryRhythm,
}

type keywordEntry struct {
	keyword  string
	category string
}

// Longer, more specific keywords come first.
var keywordMatches = []keywordEntry{
	// Academic before Mind so "read chapter 3 of the textbook" is study.
	{"assignment", CategoryAcademic},
	{"textbook", CategoryAcademic},
	{"lecture", CategoryAcademic},
	{"homework", CategoryAcademic},
	{"revise", CategoryAcademic},
	{"study", CategoryAcademic},
	{"exam", CategoryAcademic},
	{"class", CategoryAcademic},

	{"side project", CategoryCoding},
	{"pull request", CategoryCoding},
	{"leetcode", CategoryCoding},
	{"debug", CategoryCoding},
	{"code", CategoryCoding},
	{"coding", CategoryCoding},
	{"program", CategoryCoding},

	{"stretch", CategoryBody},
	{"workout", CategoryBody},
	{"cardio", CategoryBody},
	{"stairs", CategoryBody},
	{"gym", CategoryBody},
	{"jog", CategoryBody},
	{"run", CategoryBody},
	{"walk", CategoryBody},
	{"swim", CategoryBody},

	{"meditat", CategoryMind},
	{"journal", CategoryMind},
	{"chapter", CategoryMind},
	{"book", CategoryMind},
	{"read", CategoryMind},

	{"record", CategoryRealLife},
	{"video", CategoryRealLife},
	{"content", CategoryRealLife},

	{"wake", CategoryRhythm},
	{"sleep", CategoryRhythm},
	{"bed", CategoryRhythm},
}
