package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGetTextKeepsScriptEntities(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><script id="modelJson">{&quot;a&quot;:1}</script></body></html>`,
	))
	require.NoError(t, err)

	text := GetText(doc.Find("script").Nodes[0])
	require.Equal(t, "{&quot;a&quot;:1}", text)
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "چلو کباب + دوغ", CleanText("  چلو   کباب\n\t+ دوغ \u200b"))
}

func TestHiddenFields(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<form method="post" action="https://frs.modares.ac.ir/">
			<input type="hidden" name="code" value="abc" />
			<input type="HIDDEN" name="state" value="" />
			<input type="hidden" value="orphan" />
			<input type="text" name="visible" value="x" />
			<noscript><input type="submit" value="Submit" /></noscript>
		</form>`))
	require.NoError(t, err)

	fields := HiddenFields(doc.Find("form"))
	require.Equal(t, url.Values{
		"code":  {"abc"},
		"state": {""},
	}, fields)
}
