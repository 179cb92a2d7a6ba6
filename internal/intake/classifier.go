// Package intake turns a free-text idea into structured artifacts:
// a deterministic classification, a set of clarifying questions, and a
// seed feature tree with provenance citations. Everything in this
// package is pure; no function touches storage.
package intake

import (
	"regexp"
	"sort"
	"strings"
)

// ProjectType is the coarse classification of an idea.
type ProjectType string

// Project types.
const (
	TypeSoftware ProjectType = "software"
	TypeOps      ProjectType = "ops"
	TypeHybrid   ProjectType = "hybrid"
)

// Classification is the output of Classify.
type Classification struct {
	Type  ProjectType
	Tags  []string
	Risks []string
}

// Keyword groups are matched against lower-cased idea text. Software and
// ops signal groups are disjoint; tag and risk groups match independently.
var (
	softwareSignalRe = regexp.MustCompile(`\b(app|application|software|api|apis|backend|frontend|database|auth|login|saas|website|web app|dashboard|cli|sdk)\b`)
	opsSignalRe      = regexp.MustCompile(`\b(ops|operations|sop|process|cleaning|crew|shift|shifts|schedule|scheduling|logistics|warehouse|inventory|maintenance|inspection|checklist|staff|onsite|on-site)\b`)

	tagGroups = []struct {
		tag string
		re  *regexp.Regexp
	}{
		{"software", softwareSignalRe},
		{"ops", opsSignalRe},
		{"mobile", regexp.MustCompile(`\b(mobile|ios|android|phone|tablet)\b`)},
		{"web", regexp.MustCompile(`\b(web|website|browser|webapp|web app)\b`)},
		{"api", regexp.MustCompile(`\b(api|apis|rest|graphql|webhook|webhooks|integration|integrations)\b`)},
		{"local-first", regexp.MustCompile(`\b(local-first|offline|on-device|local first)\b`)},
	}

	riskGroups = []struct {
		risk string
		re   *regexp.Regexp
	}{
		{"payments", regexp.MustCompile(`\b(payment|payments|billing|invoice|invoicing|stripe|checkout|subscription)\b`)},
		{"notifications", regexp.MustCompile(`\b(notification|notifications|email|emails|sms|push|reminder|reminders)\b`)},
		{"pii-privacy", regexp.MustCompile(`\b(pii|privacy|gdpr|personal data|health|medical|hipaa)\b`)},
		{"multi-user", regexp.MustCompile(`\b(multi-user|multiuser|team|teams|collaborat\w*|roles|permissions)\b`)},
	}
)

// Classify maps free-text idea content to a project type, tag set, and
// risk set. Deterministic: identical input yields identical output.
// Absence of both signals defaults to hybrid rather than an error; the
// caller is responsible for rejecting empty input.
func Classify(text string) Classification {
	lower := strings.ToLower(text)

	software := softwareSignalRe.MatchString(lower)
	ops := opsSignalRe.MatchString(lower)

	var typ ProjectType
	switch {
	case software && ops:
		typ = TypeHybrid
	case software:
		typ = TypeSoftware
	case ops:
		typ = TypeOps
	default:
		typ = TypeHybrid
	}

	var tags []string
	for _, g := range tagGroups {
		if g.re.MatchString(lower) {
			tags = append(tags, g.tag)
		}
	}
	if len(tags) == 0 {
		tags = []string{"hybrid"}
	}
	sort.Strings(tags)

	risks := []string{}
	for _, g := range riskGroups {
		if g.re.MatchString(lower) {
			risks = append(risks, g.risk)
		}
	}
	sort.Strings(risks)

	return Classification{Type: typ, Tags: tags, Risks: risks}
}
