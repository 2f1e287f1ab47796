package flatten

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Policy selects one of the two reasoning-assignment behaviors. The two
// differ in the scope of the used-publication set, the tag source, and
// whether publication IDs are matched by text or by value; they are kept
// as distinct strategies rather than merged.
type Policy int

const (
	// PolicyPerHighOrder resets reasoning attribution for every high-order
	// entry, matches publication IDs by their stringified form, and forces
	// every low-order tag to "INCON-<parent paragraph>". Absent fields
	// become empty strings.
	PolicyPerHighOrder Policy = iota

	// PolicyPerItem tracks used publication IDs across a whole item,
	// matches publication IDs by exact value, honors each entry's own tag,
	// and suppresses all fields but Tag and Reasonings on CONF- tags.
	// Absent fields become nil.
	PolicyPerItem
)

func (p Policy) String() string {
	switch p {
	case PolicyPerItem:
		return "per-item"
	default:
		return "per-high-order"
	}
}

// ParsePolicy maps a policy name to a Policy. The empty string selects the
// default per-high-order policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "per-high-order":
		return PolicyPerHighOrder, nil
	case "per-item":
		return PolicyPerItem, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want per-high-order or per-item)", s)
	}
}

// Flatten resolves the document's items and emits one row per high-order
// entry immediately followed by one row per low-order child, in source
// order. The transform is pure: it never reorders, deduplicates, or writes
// anything.
func Flatten(doc any, policy Policy) ([]Row, error) {
	items, err := Resolve(doc)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			return nil, &MalformedEntryError{
				Path:   fmt.Sprintf("items[%d]", i),
				Reason: "expected an object, got " + shapeOf(raw),
			}
		}

		path := fmt.Sprintf("items[%d]", i)
		switch policy {
		case PolicyPerItem:
			rows, err = flattenPerItem(rows, item, path)
		default:
			rows, err = flattenPerHighOrder(rows, item, path)
		}
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// flattenPerHighOrder implements the per-high-order policy: a per-item
// reasoning lookup keyed by stringified publication ID (last entry wins),
// with the used set reset for every high-order entry.
func flattenPerHighOrder(rows []Row, item map[string]any, path string) ([]Row, error) {
	hots, err := seqField(item, "high_order_text", path)
	if err != nil {
		return nil, err
	}
	reasonings, err := reasoningEntries(item, path)
	if err != nil {
		return nil, err
	}

	// Later entries overwrite earlier ones for the same publication.
	lookup := make(map[string]any, len(reasonings))
	for _, r := range reasonings {
		lookup[stringify(r["publication_ID"])] = valueOr(r["reasoning"], "")
	}

	for h, rawHot := range hots {
		hotPath := fmt.Sprintf("%s.high_order_text[%d]", path, h)
		hot, ok := rawHot.(map[string]any)
		if !ok {
			return nil, &MalformedEntryError{Path: hotPath, Reason: "expected an object, got " + shapeOf(rawHot)}
		}

		tags, err := joinTags(hot, hotPath)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{
			TextType:        "High-Order Text",
			ParagraphID:     valueOr(hot["paragraph_ID"], ""),
			PublicationID:   valueOr(hot["publication_ID"], ""),
			TaskText:        valueOr(hot["text"], ""),
			Tag:             tags,
			SimilarityScore: "N/A",
			Reasonings:      "",
		})

		lots, err := seqField(hot, "low_order_texts", hotPath)
		if err != nil {
			return nil, err
		}

		inconTag := "INCON-" + stringify(hot["paragraph_ID"])
		used := make(map[string]bool, len(lots))
		for l, rawLot := range lots {
			lotPath := fmt.Sprintf("%s.low_order_texts[%d]", hotPath, l)
			lot, ok := rawLot.(map[string]any)
			if !ok {
				return nil, &MalformedEntryError{Path: lotPath, Reason: "expected an object, got " + shapeOf(rawLot)}
			}

			pubID := stringify(lot["publication_ID"])
			reasoning := any("")
			if pubID != "" && !used[pubID] {
				if v, ok := lookup[pubID]; ok {
					reasoning = v
				}
				used[pubID] = true
			}

			rows = append(rows, Row{
				TextType:        "Low-Order Text",
				ParagraphID:     valueOr(lot["paragraph_ID"], ""),
				PublicationID:   pubID,
				TaskText:        valueOr(lot["text"], ""),
				Tag:             inconTag,
				SimilarityScore: valueOr(lot["similarity_score"], ""),
				Reasonings:      reasoning,
			})
		}
	}
	return rows, nil
}

// flattenPerItem implements the per-item policy: one used set spanning all
// of the item's high-order groups, first matching reasoning entry by exact
// value, raw tags, CONF suppression.
func flattenPerItem(rows []Row, item map[string]any, path string) ([]Row, error) {
	hots, err := seqField(item, "high_order_text", path)
	if err != nil {
		return nil, err
	}
	reasonings, err := reasoningEntries(item, path)
	if err != nil {
		return nil, err
	}

	// First-seen publication IDs, exact values. Inputs are small; a linear
	// scan keeps the policy's value-equality semantics intact.
	var used []any

	for h, rawHot := range hots {
		hotPath := fmt.Sprintf("%s.high_order_text[%d]", path, h)
		hot, ok := rawHot.(map[string]any)
		if !ok {
			return nil, &MalformedEntryError{Path: hotPath, Reason: "expected an object, got " + shapeOf(rawHot)}
		}

		var tag any
		if v, ok := hot["tags"]; ok && v != nil {
			joined, err := joinTags(hot, hotPath)
			if err != nil {
				return nil, err
			}
			tag = joined
		}
		rows = append(rows, Row{
			TextType:        "High-Order Text",
			ParagraphID:     hot["paragraph_ID"],
			PublicationID:   hot["publication_ID"],
			TaskText:        hot["text"],
			Tag:             tag,
			SimilarityScore: "N/A",
		})

		lots, err := seqField(hot, "low_order_texts", hotPath)
		if err != nil {
			return nil, err
		}

		for l, rawLot := range lots {
			lotPath := fmt.Sprintf("%s.low_order_texts[%d]", hotPath, l)
			lot, ok := rawLot.(map[string]any)
			if !ok {
				return nil, &MalformedEntryError{Path: lotPath, Reason: "expected an object, got " + shapeOf(rawLot)}
			}

			// The publication is consumed the moment it is first seen,
			// whether or not any reasoning matches it.
			pubID := lot["publication_ID"]
			var reasoning any
			if !containsValue(used, pubID) {
				used = append(used, pubID)
				for _, r := range reasonings {
					if equalValue(r["publication_ID"], pubID) {
						reasoning = r["reasoning"]
						break
					}
				}
			}

			tag := resolveTag(lot, hot)
			if strings.HasPrefix(stringify(tag), "CONF-") {
				// Confirmation record: only the tag and any resolved
				// reasoning survive.
				rows = append(rows, Row{Tag: tag, Reasonings: reasoning})
				continue
			}

			rows = append(rows, Row{
				TextType:        "Low-Order Text",
				ParagraphID:     lot["paragraph_ID"],
				PublicationID:   pubID,
				TaskText:        lot["text"],
				Tag:             tag,
				SimilarityScore: lot["similarity_score"],
				Reasonings:      reasoning,
			})
		}
	}
	return rows, nil
}

// resolveTag returns the entry's own tag when set, else the INCON link to
// the parent high-order paragraph.
func resolveTag(lot, hot map[string]any) any {
	if t, ok := lot["tag"]; ok && t != nil {
		return t
	}
	return "INCON-" + stringify(hot["paragraph_ID"])
}

// seqField returns m[key] as a sequence. Absent or null keys default to an
// empty sequence; any other non-sequence value is a MalformedEntryError.
func seqField(m map[string]any, key, path string) ([]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.([]any)
	if !ok {
		return nil, &MalformedEntryError{
			Path:   path + "." + key,
			Reason: "expected a sequence, got " + shapeOf(v),
		}
	}
	return s, nil
}

// reasoningEntries returns the item's reasonings as objects, failing fast
// on any entry that is not one.
func reasoningEntries(item map[string]any, path string) ([]map[string]any, error) {
	seq, err := seqField(item, "reasonings", path)
	if err != nil {
		return nil, err
	}
	entries := make([]map[string]any, 0, len(seq))
	for i, raw := range seq {
		r, ok := raw.(map[string]any)
		if !ok {
			return nil, &MalformedEntryError{
				Path:   fmt.Sprintf("%s.reasonings[%d]", path, i),
				Reason: "expected an object, got " + shapeOf(raw),
			}
		}
		entries = append(entries, r)
	}
	return entries, nil
}

// joinTags renders a high-order entry's tags as a ", "-joined string.
// Absent or null tags join to the empty string.
func joinTags(hot map[string]any, path string) (string, error) {
	raw, ok := hot["tags"]
	if !ok || raw == nil {
		return "", nil
	}
	seq, ok := raw.([]any)
	if !ok {
		return "", &MalformedEntryError{
			Path:   path + ".tags",
			Reason: "expected a sequence of strings, got " + shapeOf(raw),
		}
	}
	parts := make([]string, len(seq))
	for i, t := range seq {
		s, ok := t.(string)
		if !ok {
			return "", &MalformedEntryError{
				Path:   fmt.Sprintf("%s.tags[%d]", path, i),
				Reason: "expected a string, got " + shapeOf(t),
			}
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

// valueOr returns v, or def when the value is absent or null.
func valueOr(v, def any) any {
	if v == nil {
		return def
	}
	return v
}

// stringify renders a decoded JSON scalar as text: numbers keep their
// source form, null becomes the empty string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// equalValue compares two decoded JSON values the way the per-item policy
// matches publication IDs: numbers numerically, everything else strictly.
// A number never equals a string of the same text.
func equalValue(a, b any) bool {
	an, aok := a.(json.Number)
	bn, bok := b.(json.Number)
	if aok || bok {
		if !aok || !bok {
			return false
		}
		return numberEqual(an, bn)
	}
	switch a.(type) {
	case nil, string, bool:
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func numberEqual(a, b json.Number) bool {
	if a.String() == b.String() {
		return true
	}
	af, aerr := a.Float64()
	bf, berr := b.Float64()
	return aerr == nil && berr == nil && af == bf
}

func containsValue(set []any, v any) bool {
	for _, s := range set {
		if equalValue(s, v) {
			return true
		}
	}
	return false
}
