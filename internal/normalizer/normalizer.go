package normalizer

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyInput is returned when no usable symptom tokens survive normalization
var ErrEmptyInput = errors.New("no usable symptom tokens in input")

// minTokenLength is the shortest token kept after splitting
const minTokenLength = 2

// Normalizer converts free-text symptom descriptions into normalized token sets
type Normalizer struct {
	tokenSplitter *regexp.Regexp // Pre-compiled for performance
	synonyms      []synonym
	stopwords     map[string]bool
}

// synonym maps a phrase (checked longest-first) to its canonical token
type synonym struct {
	phrase    string
	canonical string
}

// NewNormalizer creates a normalizer with the default synonym and stopword tables
func NewNormalizer() *Normalizer {
	return &Normalizer{
		tokenSplitter: regexp.MustCompile(`[^a-z0-9_]+`),
		synonyms:      defaultSynonyms(),
		stopwords:     defaultStopwords(),
	}
}

// Normalize converts raw symptom text into a sorted set of normalized tokens.
// It lowercases, folds synonyms, splits on punctuation/whitespace, drops
// short tokens and stopwords, and deduplicates. Returns ErrEmptyInput when
// nothing usable remains.
func (n *Normalizer) Normalize(raw string) ([]string, error) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return nil, ErrEmptyInput
	}

	// Fold multi-word phrases before splitting so "tummy ache" becomes a
	// single canonical token rather than two unrelated words
	for _, s := range n.synonyms {
		text = strings.ReplaceAll(text, s.phrase, s.canonical)
	}

	seen := make(map[string]bool)
	for _, token := range n.tokenSplitter.Split(text, -1) {
		token = strings.TrimSpace(token)
		if len(token) < minTokenLength {
			continue
		}
		if n.stopwords[token] {
			continue
		}
		seen[token] = true
	}

	if len(seen) == 0 {
		return nil, ErrEmptyInput
	}

	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens, nil
}

// defaultSynonyms returns the static synonym table. Canonical forms are
// single tokens so they survive splitting; multi-word symptoms use
// underscores (sore_throat, chest_pain). Longer phrases come first so
// "stomach ache" folds before the bare "ache" rules could interfere.
func defaultSynonyms() []synonym {
	return []synonym{
		{"tummy ache", "stomachache"},
		{"stomach ache", "stomachache"},
		{"stomach pain", "stomachache"},
		{"belly ache", "stomachache"},
		{"abdominal pain", "stomachache"},
		{"sore throat", "sore_throat"},
		{"throat pain", "sore_throat"},
		{"chest pain", "chest_pain"},
		{"chest tightness", "chest_pain"},
		{"shortness of breath", "shortness_breath"},
		{"short of breath", "shortness_breath"},
		{"difficulty breathing", "shortness_breath"},
		{"trouble breathing", "shortness_breath"},
		{"runny nose", "runny_nose"},
		{"stuffy nose", "congestion"},
		{"blocked nose", "congestion"},
		{"throwing up", "vomiting"},
		{"threw up", "vomiting"},
		{"throw up", "vomiting"},
		{"high temperature", "fever"},
		{"feverish", "fever"},
		{"body ache", "body_aches"},
		{"body aches", "body_aches"},
		{"muscle ache", "body_aches"},
		{"muscle aches", "body_aches"},
		{"muscle pain", "body_aches"},
		{"joint pain", "joint_pain"},
		{"loss of taste", "loss_of_taste"},
		{"loss of smell", "loss_of_smell"},
		{"coughing", "cough"},
		{"sneezed", "sneezing"},
		{"migraine", "headache"},
		{"head ache", "headache"},
		{"nauseous", "nausea"},
		{"queasy", "nausea"},
		{"exhausted", "fatigue"},
		{"exhaustion", "fatigue"},
		{"tiredness", "fatigue"},
		{"tired", "fatigue"},
		{"dizzy", "dizziness"},
		{"lightheaded", "dizziness"},
		{"diarrhoea", "diarrhea"},
		{"itchy", "itching"},
		{"shivering", "chills"},
	}
}

// defaultStopwords returns filler words dropped from symptom text
func defaultStopwords() map[string]bool {
	words := []string{
		"i", "a", "an", "the", "my", "me", "im", "ive", "and", "or", "of",
		"in", "on", "at", "to", "for", "with", "have", "has", "had", "having",
		"am", "is", "are", "was", "were", "been", "being", "feel", "feeling",
		"feels", "felt", "get", "got", "getting", "really", "very", "quite",
		"also", "some", "bit", "little", "lot", "since", "it", "its", "that",
		"this", "there", "been", "like", "just", "still", "now", "today",
		"yesterday", "morning", "night", "day", "days", "week", "weeks",
		"bad", "badly", "lately", "recently", "experiencing",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
