package bot

// materials maps a topic keyword to a study-resource URL, served by
// the /material command
var materials = map[string]string{
	"python":     "https://realpython.com/cheat-sheet-pdf/ (Python Cheat Sheet PDF)",
	"javascript": "https://web.stanford.edu/class/cs142/cheatsheet.pdf (JS Cheat Sheet PDF)",
	"dsa":        "https://www.geeksforgeeks.org/printable-dsa-cheat-sheet/ (DSA Sheet)",
	"ai":         "https://stanford.edu/~shervine/teaching/cs-229/cheatsheet-supervised-learning.pdf (AI PDF)",
}

// LookupMaterial returns the resource for a topic keyword
func LookupMaterial(topic string) (string, bool) {
	url, ok := materials[topic]
	return url, ok
}
