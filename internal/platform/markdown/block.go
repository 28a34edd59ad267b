package markdown

import "strings"

// Block is a generated region delimited by HTML comment markers. Text outside
// the markers belongs to the user and survives regeneration.
type Block struct {
	Name string
}

func (b Block) StartMarker() string { return "<!-- sprintbell:" + b.Name + ":start -->" }
func (b Block) EndMarker() string   { return "<!-- sprintbell:" + b.Name + ":end -->" }

// Replace swaps the block's content in body, appending the block when absent.
func (b Block) Replace(body, generated string) string {
	startMarker, endMarker := b.StartMarker(), b.EndMarker()
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	block := startMarker + "\n" + generated + "\n" + endMarker

	if start >= 0 && end > start {
		end += len(endMarker)
		return body[:start] + block + body[end:]
	}
	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}
