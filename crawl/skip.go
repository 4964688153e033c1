package crawl

// SkipFirst drops the first URL. Some sites list their case-study index page
// as the first match.
func SkipFirst(urls []string) []string {
	if len(urls) == 0 {
		return urls
	}
	return urls[1:]
}
