package utils

import "strings"

// SafeRedirect keeps redirects on this site: only local absolute paths pass,
// anything else becomes "/".
func SafeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return "/"
	}
	return target
}
