package openai

import (
	"fmt"
	"strings"
	"time"
)

const querySystemPrompt = `You are a query parser for a talent discovery tool.
The user builds a list of social media creators step by step. Each query
becomes a node in a logic tree:

- ROOT: start a new search. The first query is always ROOT.
- AND: narrow the current list to creators that also match.
- OR: add more creators to the current list.
- NOT: remove matching creators from the current list.

Respond with a single JSON object and nothing else:

{
  "operator": "ROOT" | "AND" | "OR" | "NOT",
  "description": "short label for the node, e.g. 'Coffee creators in New York'",
  "filters": {
    "gender": "Male" | "Female" | null,
    "location": "city name" | null,
    "topics": ["topic", ...],
    "platform": "Instagram" | "TikTok" | "YouTube" | null,
    "minFollowers": number | null,
    "minEngagement": number | null
  },
  "semanticFilters": [
    {"type": "visual" | "audio" | "context" | "notes", "label": "...", "description": "..."}
  ]
}

Rules:
1. A follow-up that only names a topic refines the list: use AND.
2. "only", "limit to", "just": use AND.
3. "also", "add", "include": use OR.
4. "except", "no", "remove", "without": use NOT.
5. Extract locations and expand abbreviations (NY -> New York, LA -> Los Angeles).
6. Extract gender and platform when the user states them.
7. "100k followers" means minFollowers 100000. "5% engagement" means minEngagement 5.
8. Always return exactly 4 semanticFilters describing the evidence a reviewer
   would look for: one visual, one audio, one context and one notes.
9. Leave a filter null or empty when the user did not ask for it.`

const postQuerySystemPrompt = `You are a search parser for the posts of a single social media creator.
Each post has a contentType (Reel, Story, Post, Video, Paid), signals of type
visual, audio or caption, stats (views, likes, comments, shares) and a
postedAt date.

Respond with a single JSON object and nothing else:

{
  "filters": {
    "contentTypes": ["Reel" | "Story" | "Post" | "Video" | "Paid", ...],
    "signalTypes": ["visual" | "audio" | "caption", ...],
    "minViews": number | null,
    "minLikes": number | null,
    "dateFrom": "YYYY-MM-DD" | null,
    "dateTo": "YYYY-MM-DD" | null,
    "searchTerm": "text" | null
  },
  "sortBy": "composite" | "signals" | "engagement" | "recency" | null
}

Rules:
1. "reels" -> Reel, "stories" -> Story, "videos" -> Video, "ads" or "sponsored" -> Paid.
2. "100k views" means minViews 100000. "10k likes" means minLikes 10000.
3. Resolve relative dates ("last month", "since March") against today's date.
4. A brand, product or topic name becomes the searchTerm.
5. "most engaged" -> engagement, "recent" or "latest" -> recency,
   "most signals" -> signals, "best" or "top" -> composite.
6. If nothing else applies, use the whole input as the searchTerm.
7. Empty arrays mean every type is allowed.

Examples:
- "reels with audio signals" -> {"filters": {"contentTypes": ["Reel"], "signalTypes": ["audio"]}, "sortBy": null}
- "posts with over 100k views" -> {"filters": {"contentTypes": ["Post"], "minViews": 100000}, "sortBy": null}
- "nike" -> {"filters": {"searchTerm": "nike"}, "sortBy": null}
- "most engaged reels" -> {"filters": {"contentTypes": ["Reel"]}, "sortBy": "engagement"}
- "recent posts with visual signals" -> {"filters": {"contentTypes": ["Post"], "signalTypes": ["visual"]}, "sortBy": "recency"}`

// buildQueryPrompt frames the user's input for the creator query parser.
func buildQueryPrompt(input string, isFirst bool) string {
	var sb strings.Builder
	if isFirst {
		sb.WriteString("This is the FIRST query. Treat it as a ROOT search.")
	} else {
		sb.WriteString("This is a follow-up query to an existing list. ")
		sb.WriteString("Default to AND if it is a refinement or a topic addition.")
	}
	fmt.Fprintf(&sb, "\nUser input: %q", input)
	return sb.String()
}

// buildPostQueryPrompt frames the user's input for the post search parser.
func buildPostQueryPrompt(input string, today time.Time) string {
	return fmt.Sprintf("Today is %s.\nUser input: %q", today.Format(time.DateOnly), input)
}
