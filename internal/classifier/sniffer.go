package classifier

import "regexp"

var emailShapes = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*dear\s+\w+`),
	regexp.MustCompile(`(?im)regards,\s*$`),
	regexp.MustCompile(`(?im)sent\s+from\s+my\s+\w+`),
}

// LooksLikeEmail reports whether text carries a salutation, a sign-off or a mobile
// signature line. Best effort only.
func LooksLikeEmail(text string) bool {
	for _, shape := range emailShapes {
		if shape.MatchString(text) {
			return true
		}
	}
	return false
}
