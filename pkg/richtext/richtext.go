// Package richtext extracts plain text from Slack's nested rich_text block format.
//
// A rich_text value looks like
//
//	[{"type":"rich_text","elements":[{"type":"rich_text_section","elements":[{"type":"text","text":"Task name"}]}]}]
//
// and may arrive JSON-encoded inside a string, already decoded, or as plain text.
package richtext

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const leafTypeText = "text"

// Decode returns the plain text carried by v.
//
// Strings that are not valid JSON are plain text and come back unchanged. Values that
// decode to something other than a block sequence are stringified. For block sequences
// every text leaf is collected in source order and joined with single spaces; a non-empty
// sequence without text leaves falls back to its stringified form.
func Decode(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if !gjson.Valid(val) {
			return val
		}
		return decodeJSON(val)
	case []byte:
		return Decode(string(val))
	case json.RawMessage:
		return Decode(string(val))
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return decodeJSON(string(raw))
	}
}

func decodeJSON(raw string) string {
	doc := gjson.Parse(raw)
	if !doc.IsArray() {
		return stringify(doc)
	}

	blocks := doc.Array()
	if len(blocks) == 0 {
		return ""
	}

	var texts []string
	for _, block := range objects(blocks) {
		for _, element := range children(block) {
			for _, leaf := range children(element) {
				if leaf.Get("type").String() == leafTypeText {
					texts = append(texts, leaf.Get("text").String())
				}
			}
		}
	}

	if len(texts) == 0 {
		return doc.Raw
	}
	return strings.Join(texts, " ")
}

// children returns the object members of node's "elements" list. Anything that is not a
// list (a string, an object, a missing key) has no children.
func children(node gjson.Result) []gjson.Result {
	elements := node.Get("elements")
	if !elements.IsArray() {
		return nil
	}
	return objects(elements.Array())
}

// objects keeps only the JSON objects of items.
func objects(items []gjson.Result) []gjson.Result {
	out := items[:0:0]
	for _, item := range items {
		if item.IsObject() {
			out = append(out, item)
		}
	}
	return out
}

func stringify(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.Str
	}
	return r.Raw
}
