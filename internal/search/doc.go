// Package search provides the backends behind the DeepSearch tool.
//
// Available backends:
//
//   - DuckDuckGo: free, no API key required (HTML scraping of lite.duckduckgo.com)
//   - Brave: requires an API key sent as X-Subscription-Token
//   - Tavily: requires an API key, supports basic/advanced depth
//   - MCP: forwards the query to a tool on an MCP server
//
// HTTP backends return structured results which Format turns into the
// observation text handed back to the model:
//
//	searcher := search.AsText(search.NewDuckDuckGo())
//	observation, err := searcher.Search(ctx, "Elon Musk news")
//
// Open builds whichever backend a config.SearchConfig selects.
package search
