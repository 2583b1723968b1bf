package css

import "sync"

// userAgentCSS holds the default styles the layout engine depends on.
const userAgentCSS = `
/* Block elements */
html, body, div, article, aside, footer, header, nav, section,
main, figure, figcaption, blockquote, pre, address, p, ul, ol, li,
h1, h2, h3, h4, h5, h6, form, fieldset, table {
	display: block;
}

/* Hidden elements */
head, script, style, title, meta, link, template, noscript {
	display: none;
}

body {
	margin: 8px;
}

p, ul, ol, blockquote, pre {
	margin-top: 1em;
	margin-bottom: 1em;
}

h1 {
	font-size: 2em;
	margin-top: 0.67em;
	margin-bottom: 0.67em;
}

h2 {
	font-size: 1.5em;
	margin-top: 0.83em;
	margin-bottom: 0.83em;
}

ul, ol {
	padding-left: 40px;
}
`

var (
	userAgentOnce  sync.Once
	userAgentSheet *Stylesheet
)

// UserAgentStylesheet returns the parsed default stylesheet. The result is
// shared and must not be modified.
func UserAgentStylesheet() *Stylesheet {
	userAgentOnce.Do(func() {
		userAgentSheet = ParseStylesheet(userAgentCSS)
	})
	return userAgentSheet
}
