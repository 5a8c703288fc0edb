package layouts

// CalculateTitle builds the document title for a page.
func CalculateTitle(appName, title string) string {
	if title != "" {
		return title + " - " + appName
	}
	return appName
}
