package domain

import (
	"net/url"
	"strconv"
	"strings"
)

func StartURL(minutes int, title string, goals []string) string {
	var sb strings.Builder
	sb.WriteString(Scheme + "://start?mins=" + strconv.Itoa(minutes))
	sb.WriteString("&title=" + url.QueryEscape(title))
	if len(goals) > 0 {
		sb.WriteString("&goals=" + url.QueryEscape(strings.Join(goals, ",")))
	}
	return sb.String()
}

func PauseURL() string {
	return Scheme + "://pause"
}

func StopURL(result string) string {
	if result == "" {
		result = "Complete"
	}
	return Scheme + "://stop?result=" + url.QueryEscape(result)
}

func NoteURL(text string) string {
	return Scheme + "://note?text=" + url.QueryEscape(text)
}
