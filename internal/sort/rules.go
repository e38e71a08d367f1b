package sort

import "tiedye/pkg/types"

// Match returns the first rule whose extension set contains the candidate's
// suffix. Rule order is the sole tie-break; there is no specificity scoring.
// A file without a suffix only matches a rule that explicitly lists "".
func Match(rules []types.SortRule, file types.CandidateFile) (types.SortRule, bool) {
	for _, rule := range rules {
		if rule.Matches(file.Suffix) {
			return rule, true
		}
	}
	return types.SortRule{}, false
}
