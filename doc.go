// Package articlekit is the in-process article assistant: extractive
// summaries, related-article ranking by TF-IDF cosine similarity, keyword
// category suggestions and engagement-based popularity ordering.
//
// The stopword list is resolved once in New (resource cache, then the
// bundled list, then a remote download) and shared by every call.
//
//	kit, err := articlekit.New(ctx, articlekit.WithLanguage("tr"))
//	if err != nil {
//	    return err
//	}
//	defer kit.Close()
//
//	summary := kit.Summarize(ctx, body, 3)
//	related, err := kit.FindSimilar(ctx, body, candidates, 5)
//	label := kit.SuggestCategory(title, body)
package articlekit
