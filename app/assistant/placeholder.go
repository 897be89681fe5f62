package assistant

import "fmt"

// Placeholder returns the deterministic draft used when no assistant is
// configured.
func Placeholder(topic, tone string) Draft {
	return Draft{
		Title:   fmt.Sprintf("The Future of %s", topic),
		Excerpt: fmt.Sprintf("Exploring the latest trends and innovations in %s. This comprehensive guide covers everything you need to know.", topic),
		Content: fmt.Sprintf("# The Future of %[1]s\n\n"+
			"%[1]s is evolving rapidly. In this %[2]s article, we dive deep into the current state and future possibilities.\n\n"+
			"## Key Trends\n\n"+
			"- Innovation in technology\n"+
			"- Market changes\n"+
			"- Future predictions\n\n"+
			"## Conclusion\n\n"+
			"The landscape of %[1]s is bright and full of opportunities.", topic, tone),
	}
}
