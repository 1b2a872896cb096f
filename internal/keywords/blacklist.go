package keywords

// blacklist holds common English words and job-posting boilerplate that are never keywords.
// Entries are lower-case.
var blacklist = toSet([]string{
	"location", "remote", "experience", "type", "full", "time", "internship",
	"about", "looking", "responsibilities", "required", "skills", "good",
	"have", "qualifications", "education", "year", "years", "fresher", "role", "ideal",
	"candidate", "should", "hands", "based", "using", "build", "train",
	"perform", "develop", "manage", "implement", "design", "training",
	"services", "applications", "features", "solutions", "systems", "products",
	"building", "passion", "strong", "real", "world", "portfolio",
	"demonstrating", "specialization", "pursuing", "completed", "exposure",
	"basics", "key", "our", "the", "and", "for", "with", "that", "this",
	"are", "you", "will", "from", "your", "been", "they", "their", "also",
	"into", "such", "more", "both", "each", "well", "able", "new", "any",
	"all", "can", "its", "plus", "via", "per", "vs", "etc", "or", "of",
	"in", "is", "it", "be", "as", "at", "to", "do", "by", "we", "an",
	"on", "work", "team", "must", "other", "high", "some", "than", "like",
	"what", "when", "who", "how", "use", "need", "join", "help", "make",
	"know", "give", "take", "come", "seek",
})

// IsBlacklisted reports whether word (any case) is excluded from keyword extraction.
func IsBlacklisted(word string) bool {
	return blacklist[lower(word)]
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
