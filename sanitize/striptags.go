package sanitize

import (
	stdhtml "html"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// StripTags は HTML 文字列からタグを除去し、プレーンテキストだけを返す。
// script/style ブロックは中身ごと読み飛ばす。
func StripTags(raw string) string {
	return stripCore(strings.NewReader(raw))
}

func stripCore(r io.Reader) string {
	var b strings.Builder
	z := html.NewTokenizer(r)

	depthSkip := 0 // script/style の入れ子深さ

	for {
		switch z.Next() {
		case html.ErrorToken:
			return normalizeWhitespace(b.String())

		case html.StartTagToken:
			name, _ := z.TagName()
			if skipTag(name) {
				depthSkip++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if skipTag(name) && depthSkip > 0 {
				depthSkip--
			}

		case html.TextToken:
			if depthSkip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func skipTag(name []byte) bool {
	switch string(name) {
	case "script", "style", "noscript", "iframe", "object", "embed":
		return true
	}
	return false
}

func unescapeEntities(s string) string {
	return stdhtml.UnescapeString(s)
}
