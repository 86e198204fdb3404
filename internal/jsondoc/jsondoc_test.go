package jsondoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Parse Tests ---

func TestParsePreservesKeyOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"zebra": 1, "alpha": 2, "mid": {"z": true, "a": false}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zebra", "alpha", "mid"}, doc.Keys())
	assert.Equal(t, []string{"z", "a"}, doc.GetObject("mid").Keys())
}

func TestParseNumberLiteralsRoundTrip(t *testing.T) {
	// Literal text must survive, including forms float64 would mangle.
	in := []byte(`{"big": 9007199254740993, "exp": 1e3, "frac": 0.30}`)
	doc, err := Parse(in)
	require.NoError(t, err)

	out, err := doc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "9007199254740993")
	assert.Contains(t, string(out), "1e3")
	assert.Contains(t, string(out), "0.30")
}

func TestParseRejectsTrailingContent(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"a": 1} garbage`))
	assert.Error(t, err)
}

func TestParseRejectsNonObjectRoot(t *testing.T) {
	for _, in := range []string{`[1, 2]`, `"text"`, `42`, `true`} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, "input %s", in)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)

	_, err = Parse([]byte(``))
	assert.Error(t, err)
}

// --- Accessor Tests ---

func TestSetKeepsPositionOnOverwrite(t *testing.T) {
	doc, err := Parse([]byte(`{"first": 1, "second": 2, "third": 3}`))
	require.NoError(t, err)

	doc.Set("second", "changed")
	assert.Equal(t, []string{"first", "second", "third"}, doc.Keys())
	assert.Equal(t, "changed", doc.GetString("second"))
}

func TestSetAppendsNewKey(t *testing.T) {
	doc := New()
	doc.Set("a", "1")
	doc.Set("b", true)
	assert.Equal(t, []string{"a", "b"}, doc.Keys())
}

func TestDelete(t *testing.T) {
	doc := New()
	doc.Set("a", "1")
	doc.Set("b", "2")
	doc.Set("c", "3")

	doc.Delete("b")
	assert.Equal(t, []string{"a", "c"}, doc.Keys())
	assert.False(t, doc.Has("b"))

	// Deleting a missing key is a no-op.
	doc.Delete("missing")
	assert.Equal(t, 2, doc.Len())
}

func TestTypedAccessors(t *testing.T) {
	doc, err := Parse([]byte(`{"s": "text", "b": true, "n": 42, "f": 1.5, "o": {"k": "v"}, "a": [1, 2]}`))
	require.NoError(t, err)

	assert.Equal(t, "text", doc.GetString("s"))
	assert.True(t, doc.GetBool("b"))
	assert.Equal(t, 42, doc.GetInt("n"))
	assert.Equal(t, 1.5, doc.GetFloat("f"))
	assert.Equal(t, "v", doc.GetObject("o").GetString("k"))
	assert.Len(t, doc.GetArray("a"), 2)

	// Wrong type or absent yields zero values, not panics.
	assert.Equal(t, "", doc.GetString("b"))
	assert.False(t, doc.GetBool("s"))
	assert.Equal(t, 0, doc.GetInt("missing"))
	assert.Nil(t, doc.GetObject("s"))
	assert.Nil(t, doc.GetArray("s"))
}

func TestEnsureObject(t *testing.T) {
	doc := New()
	env := doc.EnsureObject("env")
	env.Set("KEY", "value")

	// Same object on second call.
	assert.Equal(t, "value", doc.EnsureObject("env").GetString("KEY"))

	// A non-object value is replaced.
	doc.Set("flat", "string")
	assert.Equal(t, 0, doc.EnsureObject("flat").Len())
}

func TestClone(t *testing.T) {
	doc, err := Parse([]byte(`{"top": "v", "nested": {"inner": [1, {"deep": true}]}}`))
	require.NoError(t, err)

	cp := doc.Clone()
	cp.Set("top", "changed")
	cp.GetObject("nested").Set("inner", "replaced")

	assert.Equal(t, "v", doc.GetString("top"))
	assert.Len(t, doc.GetObject("nested").GetArray("inner"), 2)
}

// --- Marshal Tests ---

func TestMarshalRoundTrip(t *testing.T) {
	in := []byte(`{
  "name": "example",
  "count": 3,
  "enabled": true,
  "nothing": null,
  "nested": {
    "list": [
      "a",
      2,
      false
    ],
    "empty": {}
  },
  "emptyList": []
}`)
	doc, err := Parse(in)
	require.NoError(t, err)

	out, err := doc.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(in), string(out))
}

func TestMarshalEscapesStrings(t *testing.T) {
	doc := New()
	doc.Set("path", `C:\temp`)
	doc.Set("quote", `say "hi"`)

	out, err := doc.Marshal()
	require.NoError(t, err)

	// The output must itself be valid JSON.
	var parsed map[string]string
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, `C:\temp`, parsed["path"])
	assert.Equal(t, `say "hi"`, parsed["quote"])
}

func TestMarshalEmptyObject(t *testing.T) {
	out, err := New().Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
