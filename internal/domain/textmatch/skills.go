package textmatch

import (
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// technicalSkills is the curated vocabulary of technical keywords scanned
// for in resumes, job descriptions and transcripts.
var technicalSkills = []string{
	"python", "java", "javascript", "react", "angular", "vue", "node",
	"django", "flask", "spring", "sql", "mongodb", "postgresql", "mysql",
	"aws", "azure", "docker", "kubernetes", "git", "machine learning",
	"data science", "artificial intelligence", "deep learning", "tensorflow",
	"pytorch", "scikit-learn", "pandas", "numpy", "opencv", "nlp",
	"rest api", "graphql", "microservices", "agile", "scrum", "devops",
	"ci/cd", "jenkins", "linux", "unix", "bash", "powershell",
}

// softSkills is the curated vocabulary of soft-skill keywords.
var softSkills = []string{
	"leadership", "communication", "teamwork", "problem solving",
	"analytical", "creative", "adaptable", "organized", "detail oriented",
	"time management", "project management", "collaboration", "mentoring",
	"presentation", "negotiation", "customer service", "interpersonal",
}

// ExtractSkills scans the text for every vocabulary entry it contains.
// Matching is a case-insensitive substring test, so "javascript" in the
// text also matches the "java" entry.
func ExtractSkills(text string) model.SkillSet {
	lower := strings.ToLower(text)

	var set model.SkillSet
	for _, skill := range technicalSkills {
		if strings.Contains(lower, skill) {
			set.Technical = append(set.Technical, skill)
		}
	}
	for _, skill := range softSkills {
		if strings.Contains(lower, skill) {
			set.Soft = append(set.Soft, skill)
		}
	}
	return set
}

// overlap returns the fraction of want present in have, with the matching
// and missing entries. An empty want yields 0 overlap.
func overlap(have, want []string) (frac float64, matching, missing []string) {
	if len(want) == 0 {
		return 0.0, nil, nil
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, s := range have {
		haveSet[s] = struct{}{}
	}
	for _, s := range want {
		if _, ok := haveSet[s]; ok {
			matching = append(matching, s)
		} else {
			missing = append(missing, s)
		}
	}
	return float64(len(matching)) / float64(len(want)), matching, missing
}
