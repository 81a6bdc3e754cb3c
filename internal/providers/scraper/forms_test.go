package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const loginPage = `<html><body>
<form id="search" action="/search"><input name="q" value="go"></form>
<form id="login" action="/engine/post.php" method="post" enctype="multipart/form-data">
  <input type="hidden" name="token" value="t0k3n">
  <input type="text" name="user">
  <input type="submit" value="no name">
  <select name="country">
    <option value="US"> United States </option>
    <optgroup label="Europe"><option value="FR">France</option></optgroup>
  </select>
  <textarea name="about"></textarea>
  <button name="go" value="1">Go</button>
</form>
</body></html>`

func TestExtractFieldsDocumentOrder(t *testing.T) {
	doc, err := ParseString(loginPage)
	require.NoError(t, err)

	f, found, err := Find(doc, "//form[@id='login']", unicode.UTF8)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "/engine/post.php", f.Action)
	assert.Equal(t, "POST", f.Method)
	assert.True(t, f.Multipart())

	names := []string{}
	for _, arg := range f.Fields.All() {
		names = append(names, arg.Name())
	}
	assert.Equal(t, []string{"token", "user", "country", "about", "go"}, names)

	token, ok := f.Fields.Lookup("token")
	require.True(t, ok)
	assert.Equal(t, "t0k3n", token.Text())

	user, ok := f.Fields.Lookup("user")
	require.True(t, ok)
	assert.Equal(t, "", user.Text())
	assert.Equal(t, 0, user.Options().Len())
}

func TestExtractFieldsSelectOptions(t *testing.T) {
	doc, err := ParseString(`<form><select name="country"><option value="US">United States</option></select></form>`)
	require.NoError(t, err)

	f, found, err := Find(doc, "//form", nil)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, f.Fields.Len())

	country, ok := f.Fields.Lookup("country")
	require.True(t, ok)
	assert.Equal(t, []string{"United States"}, country.Options().Keys())
	value, _ := country.Options().Get("United States")
	assert.Equal(t, "US", value)
	assert.Equal(t, "", country.Text())

	assert.False(t, f.Fields.SelectOption(country, "Narnia"))
	assert.Equal(t, "", country.Text())
	assert.True(t, f.Fields.SelectOption(country, "United States"))
	assert.Equal(t, "US", country.Text())
}

func TestExtractFieldsDefaults(t *testing.T) {
	doc, err := ParseString(`<div id="box"><input name="a" value="1"></div>`)
	require.NoError(t, err)

	f, found, err := Find(doc, "//div[@id='box']", nil)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "", f.Action)
	assert.Equal(t, "GET", f.Method)
	assert.False(t, f.Multipart())
	assert.Equal(t, charmap.Windows1251, f.Fields.Encoding())
}

func TestFindAbsence(t *testing.T) {
	doc, err := ParseString(loginPage)
	require.NoError(t, err)

	f, found, err := Find(doc, "//form[@id='missing']", nil)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, f.Fields)

	_, _, err = Find(doc, "//form[", nil)
	assert.Error(t, err)
}

func TestFindAll(t *testing.T) {
	doc, err := ParseString(loginPage)
	require.NoError(t, err)

	forms := FindAll(doc, nil)
	require.Len(t, forms, 2)
	assert.Equal(t, "/search", forms[0].Action)
	assert.Equal(t, "/engine/post.php", forms[1].Action)
}

func TestCSSDocument(t *testing.T) {
	doc, err := ParseCSS([]byte(loginPage), "text/html; charset=utf-8")
	require.NoError(t, err)

	f, found, err := Find(doc, "form#login", nil)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 5, f.Fields.Len())

	_, found, err = Find(doc, "form#missing", nil)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = doc.QueryAll("form[")
	assert.Error(t, err)

	assert.Len(t, FindAll(doc, nil), 2)
}

func TestParseCharset(t *testing.T) {
	body, err := charmap.Windows1251.NewEncoder().Bytes([]byte(`<html><body><p>привет</p></body></html>`))
	require.NoError(t, err)

	doc, err := Parse(body, "text/html; charset=windows-1251")
	require.NoError(t, err)

	texts, err := QueryText(doc, "//p")
	require.NoError(t, err)
	assert.Equal(t, []string{"привет"}, texts)
}

func TestParseMetaCharset(t *testing.T) {
	body := []byte(`<html><head><meta charset="utf-8"></head><body><p id="t">Привет</p></body></html>`)

	// a header without a charset leaves the meta tag in charge
	doc, err := Parse(body, "text/html", WithFallbackEncoding(charmap.Windows1251))
	require.NoError(t, err)

	texts, err := QueryText(doc, "//p[@id='t']")
	require.NoError(t, err)
	assert.Equal(t, []string{"Привет"}, texts)
}

func TestParseHTTPEquivCharset(t *testing.T) {
	body, err := charmap.Windows1251.NewEncoder().Bytes([]byte(
		`<html><head><meta http-equiv="Content-Type" content="text/html; charset=windows-1251"></head>` +
			`<body><p>привет</p></body></html>`))
	require.NoError(t, err)

	doc, err := ParseCSS(body, "")
	require.NoError(t, err)

	texts, err := QueryText(doc, "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"привет"}, texts)
}

func TestParseFallbackEncoding(t *testing.T) {
	text := "Съешь же ещё этих мягких французских булок, да выпей чаю. " +
		"Широкая электрификация южных губерний даст мощный толчок подъёму сельского хозяйства."
	body, err := charmap.Windows1251.NewEncoder().Bytes([]byte("<html><body><p>" + text + "</p></body></html>"))
	require.NoError(t, err)

	doc, err := Parse(body, "text/html", WithFallbackEncoding(charmap.Windows1251))
	require.NoError(t, err)

	texts, err := QueryText(doc, "//p")
	require.NoError(t, err)
	assert.Equal(t, []string{text}, texts)
}

func TestMetaCharset(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"charset attribute", `<meta charset="koi8-r">`, "koi8-r"},
		{"http-equiv", `<meta http-equiv="content-type" content="text/html; charset=windows-1251">`, "windows-1251"},
		{"other meta", `<meta name="viewport" content="width=device-width">`, ""},
		{"none", `<p>hello</p>`, ""},
		{"past prescan", strings.Repeat(" ", prescanSize) + `<meta charset="koi8-r">`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MetaCharset([]byte(tt.body)))
		})
	}
}

func TestDetermineEncoding(t *testing.T) {
	_, name := DetermineEncoding([]byte(`<meta charset="utf-8">`), "text/html; charset=koi8-r", nil)
	assert.Equal(t, "koi8-r", name, "header charset wins over meta")

	_, name = DetermineEncoding([]byte(`<meta charset="koi8-r"><p>x</p>`), "text/html", charmap.Windows1251)
	assert.Equal(t, "koi8-r", name)

	_, name = DetermineEncoding([]byte("\xef\xbb\xbf<p>x</p>"), "text/html; charset=windows-1251", nil)
	assert.Equal(t, "utf-8", name, "byte order mark wins over header")
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse(nil, "")
	assert.ErrorIs(t, err, ErrEmptyHTML)
}

func TestQueryAttribute(t *testing.T) {
	doc, err := ParseString(`<a href="/a">A</a><a>none</a><a href="/b">B</a>`)
	require.NoError(t, err)

	values, err := QueryAttribute(doc, "//a", "href")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, values)
}
