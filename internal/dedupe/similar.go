package dedupe

import "github.com/hbollon/go-edlib"

// SimilarPair flags two files whose normalized titles are close but not
// equal. Advisory output only: similar pairs never feed grouping or removal,
// since near-matches may be legitimately distinct recordings.
type SimilarPair struct {
	A, B  File
	Score float32
}

// FindSimilarTitles compares every pair of normalized titles with
// JaroWinkler similarity and returns pairs scoring at or above threshold.
// Exact matches are skipped; those already group under ByTitle.
func FindSimilarTitles(files []File, threshold float64) []SimilarPair {
	titles := make([]string, len(files))
	for i, file := range files {
		titles[i] = Normalize(file.Name())
	}

	var pairs []SimilarPair
	for i := 0; i < len(files); i++ {
		if titles[i] == "" {
			continue
		}
		for j := i + 1; j < len(files); j++ {
			if titles[j] == "" || titles[i] == titles[j] {
				continue
			}
			score, err := edlib.StringsSimilarity(titles[i], titles[j], edlib.JaroWinkler)
			if err != nil {
				continue
			}
			if float64(score) >= threshold {
				pairs = append(pairs, SimilarPair{A: files[i], B: files[j], Score: score})
			}
		}
	}
	return pairs
}
