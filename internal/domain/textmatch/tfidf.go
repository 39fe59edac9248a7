package textmatch

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// maxFeatures caps the joint vocabulary at the most frequent terms across
// both documents, ties broken alphabetically.
const maxFeatures = 1000

// tokenPattern matches words of two or more letters or digits. Single
// characters carry no signal for document similarity.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// tokenize lowercases the text, splits it into word tokens and drops
// stop words.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, skip := stopWords[tok]; skip {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// cosineSimilarity computes the TF-IDF cosine similarity between two
// documents over their joint vocabulary. The vocabulary is both documents'
// terms; IDF uses smoothed document frequencies and each vector is
// l2-normalized before the dot product. Either document blank yields 0.
func cosineSimilarity(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0.0
	}

	countsA := termCounts(tokenize(a))
	countsB := termCounts(tokenize(b))
	vocab := buildVocabulary(countsA, countsB)
	if len(vocab) == 0 {
		return 0.0
	}

	vecA := tfidfVector(countsA, countsB, vocab)
	vecB := tfidfVector(countsB, countsA, vocab)

	var dot float64
	for i := range vecA {
		dot += vecA[i] * vecB[i]
	}
	return dot
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

// buildVocabulary merges the two documents' terms, keeping at most
// maxFeatures of them ordered by total count descending.
func buildVocabulary(a, b map[string]int) []string {
	totals := make(map[string]int, len(a)+len(b))
	for term, n := range a {
		totals[term] += n
	}
	for term, n := range b {
		totals[term] += n
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	return terms
}

// tfidfVector builds the l2-normalized TF-IDF vector for the document with
// term counts own, against a two-document corpus whose other member has
// term counts other. Smoothed IDF: ln((1+n)/(1+df)) + 1 with n = 2.
func tfidfVector(own, other map[string]int, vocab []string) []float64 {
	vec := make([]float64, len(vocab))
	var norm float64
	for i, term := range vocab {
		tf := float64(own[term])
		if tf == 0 {
			continue
		}
		df := 1
		if other[term] > 0 {
			df = 2
		}
		idf := math.Log(3.0/float64(1+df)) + 1
		vec[i] = tf * idf
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
