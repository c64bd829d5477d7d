package util

import (
	"regexp"
	"strings"
)

// 只覆盖标题/粗体/斜体/列表/行内代码/段落，不是完整的markdown语法
var (
	mdH3       = regexp.MustCompile(`(?m)^### (.+)$`)
	mdH2       = regexp.MustCompile(`(?m)^## (.+)$`)
	mdH1       = regexp.MustCompile(`(?m)^# (.+)$`)
	mdBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdBoldAlt  = regexp.MustCompile(`__(.+?)__`)
	mdItalic   = regexp.MustCompile(`\*(.+?)\*`)
	mdItalAlt  = regexp.MustCompile(`_(.+?)_`)
	mdBullet   = regexp.MustCompile(`(?m)^[ \t]*[-*+] (.+)$`)
	mdNumbered = regexp.MustCompile(`(?m)^[ \t]*\d+\. (.+)$`)
	mdCode     = regexp.MustCompile("`(.+?)`")
)

// MarkdownToHTML 活动提案展示用的轻量格式化，替换顺序与原渲染器一致
func MarkdownToHTML(text string) string {
	out := text
	out = mdH3.ReplaceAllString(out, `<h3>$1</h3>`)
	out = mdH2.ReplaceAllString(out, `<h2>$1</h2>`)
	out = mdH1.ReplaceAllString(out, `<h1>$1</h1>`)
	out = mdBold.ReplaceAllString(out, `<strong>$1</strong>`)
	out = mdBoldAlt.ReplaceAllString(out, `<strong>$1</strong>`)
	out = mdItalic.ReplaceAllString(out, `<em>$1</em>`)
	out = mdItalAlt.ReplaceAllString(out, `<em>$1</em>`)
	out = mdBullet.ReplaceAllString(out, `<li>$1</li>`)
	out = mdNumbered.ReplaceAllString(out, `<li>$1</li>`)
	out = mdCode.ReplaceAllString(out, `<code>$1</code>`)
	out = strings.ReplaceAll(out, "\n\n", "</p><p>")
	out = strings.ReplaceAll(out, "\n", "<br />")
	return "<p>" + out + "</p>"
}
