package search

import (
	"sort"
	"time"

	"github.com/lqtrung-95/my-new-blog/internal/model"
)

// DatePreset is a named date range offered by the filter panel
type DatePreset struct {
	Label string
	Range DateRange
}

// DatePresets returns the standard "last N days" ranges relative to now
func DatePresets(now time.Time) []DatePreset {
	day := 24 * time.Hour
	return []DatePreset{
		{Label: "Last 7 days", Range: DateRange{Start: now.Add(-7 * day)}},
		{Label: "Last 30 days", Range: DateRange{Start: now.Add(-30 * day)}},
		{Label: "Last 3 months", Range: DateRange{Start: now.Add(-90 * day)}},
		{Label: "Last year", Range: DateRange{Start: now.Add(-365 * day)}},
	}
}

// AllTags returns every distinct tag across posts, sorted
func AllTags(posts []model.Post) []string {
	counts := TagCounts(posts)
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagCounts returns how many posts carry each tag
// A tag repeated within one post counts once for that post
func TagCounts(posts []model.Post) map[string]int {
	counts := make(map[string]int)
	for _, post := range posts {
		seen := make(map[string]bool, len(post.Tags))
		for _, tag := range post.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			counts[tag]++
		}
	}
	return counts
}
