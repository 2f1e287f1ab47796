package flatten

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenPerItem_EndToEnd(t *testing.T) {
	doc := decodeDoc(t, `{
		"high_order_text": [
			{
				"paragraph_ID": "P1",
				"publication_ID": "PubA",
				"text": "T1",
				"tags": ["a", "b"],
				"low_order_texts": [
					{"paragraph_ID": "L1", "publication_ID": "PubA", "text": "t1", "similarity_score": 0.9}
				]
			},
			{
				"paragraph_ID": "P2",
				"publication_ID": "PubB",
				"text": "T2",
				"low_order_texts": [
					{"paragraph_ID": "L2", "publication_ID": "PubA", "text": "t2", "tag": "CONF-42", "similarity_score": 0.8},
					{"paragraph_ID": "L3", "publication_ID": "PubB", "text": "t3", "similarity_score": 0.7}
				]
			}
		],
		"reasonings": [
			{"publication_ID": "PubA", "reasoning": "first"},
			{"publication_ID": "PubB", "reasoning": "second"}
		]
	}`)

	rows, err := Flatten(doc, PolicyPerItem)
	require.NoError(t, err)

	want := []Row{
		{
			TextType:        "High-Order Text",
			ParagraphID:     "P1",
			PublicationID:   "PubA",
			TaskText:        "T1",
			Tag:             "a, b",
			SimilarityScore: "N/A",
		},
		{
			TextType:        "Low-Order Text",
			ParagraphID:     "L1",
			PublicationID:   "PubA",
			TaskText:        "t1",
			Tag:             "INCON-P1",
			SimilarityScore: json.Number("0.9"),
			Reasonings:      "first",
		},
		{
			TextType:        "High-Order Text",
			ParagraphID:     "P2",
			PublicationID:   "PubB",
			TaskText:        "T2",
			SimilarityScore: "N/A",
		},
		// PubA was consumed under P1, so the CONF row carries no reasoning.
		{
			Tag: "CONF-42",
		},
		{
			TextType:        "Low-Order Text",
			ParagraphID:     "L3",
			PublicationID:   "PubB",
			TaskText:        "t3",
			Tag:             "INCON-P2",
			SimilarityScore: json.Number("0.7"),
			Reasonings:      "second",
		},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

// A CONF-tagged entry whose publication is fresh keeps its resolved
// reasoning on the suppressed row, and still consumes the used slot.
func TestFlattenPerItem_ConfRowConsumesSlot(t *testing.T) {
	doc := decodeDoc(t, `{
		"high_order_text": [{"paragraph_ID": "P1", "low_order_texts": [
			{"paragraph_ID": "L1", "publication_ID": "PubA", "tag": "CONF-42", "similarity_score": 0.5},
			{"paragraph_ID": "L2", "publication_ID": "PubA", "similarity_score": 0.4}
		]}],
		"reasonings": [{"publication_ID": "PubA", "reasoning": "conf"}]
	}`)

	rows, err := Flatten(doc, PolicyPerItem)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	conf := rows[1]
	assert.Nil(t, conf.TextType)
	assert.Nil(t, conf.ParagraphID)
	assert.Nil(t, conf.PublicationID)
	assert.Nil(t, conf.TaskText)
	assert.Nil(t, conf.SimilarityScore)
	assert.Equal(t, "CONF-42", conf.Tag)
	assert.Equal(t, "conf", conf.Reasonings)

	// The slot is spent, so the second PubA row gets nothing.
	assert.Nil(t, rows[2].Reasonings)
}

// The first reasoning entry in declaration order wins, unlike the
// per-high-order policy's last-wins lookup map.
func TestFlattenPerItem_FirstReasoningWins(t *testing.T) {
	doc := decodeDoc(t, `{
		"high_order_text": [{"paragraph_ID": "P1", "low_order_texts": [
			{"paragraph_ID": "L1", "publication_ID": "PubA"}
		]}],
		"reasonings": [
			{"publication_ID": "PubA", "reasoning": "first"},
			{"publication_ID": "PubA", "reasoning": "second"}
		]
	}`)

	rows, err := Flatten(doc, PolicyPerItem)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "first", rows[1].Reasonings)
}

// A publication is consumed the first time it appears even when no
// reasoning matches it; a matching entry added conceptually later would
// never fire for a second occurrence.
func TestFlattenPerItem_UsedWithoutMatch(t *testing.T) {
	doc := decodeDoc(t, `{
		"high_order_text": [
			{"paragraph_ID": "P1", "low_order_texts": [
				{"paragraph_ID": "L1", "publication_ID": "PubX"}
			]},
			{"paragraph_ID": "P2", "low_order_texts": [
				{"paragraph_ID": "L2", "publication_ID": "PubX"}
			]}
		],
		"reasonings": []
	}`)

	rows, err := Flatten(doc, PolicyPerItem)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Nil(t, rows[1].Reasonings)
	assert.Nil(t, rows[3].Reasonings)
}

// Publication IDs match by exact value: the number 7 never matches the
// string "7", but 7 and 7.0 are the same number.
func TestFlattenPerItem_ExactValueMatching(t *testing.T) {
	tests := []struct {
		name          string
		reasoningID   string
		lowOrderID    string
		wantReasoning any
	}{
		{"number vs string", `7`, `"7"`, nil},
		{"string vs number", `"7"`, `7`, nil},
		{"same number", `7`, `7`, "matched"},
		{"integer vs float form", `7`, `7.0`, "matched"},
		{"same string", `"PubA"`, `"PubA"`, "matched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decodeDoc(t, `{
				"high_order_text": [{"paragraph_ID": "P1", "low_order_texts": [
					{"paragraph_ID": "L1", "publication_ID": `+tt.lowOrderID+`}
				]}],
				"reasonings": [{"publication_ID": `+tt.reasoningID+`, "reasoning": "matched"}]
			}`)

			rows, err := Flatten(doc, PolicyPerItem)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, tt.wantReasoning, rows[1].Reasonings)
		})
	}
}

// Absent optional fields come through as nulls, not empty strings.
func TestFlattenPerItem_NullDefaults(t *testing.T) {
	doc := decodeDoc(t, `{
		"high_order_text": [{"paragraph_ID": "P1", "low_order_texts": [
			{"paragraph_ID": "L1"}
		]}]
	}`)

	rows, err := Flatten(doc, PolicyPerItem)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	high := rows[0]
	assert.Nil(t, high.PublicationID)
	assert.Nil(t, high.TaskText)
	assert.Nil(t, high.Tag)
	assert.Nil(t, high.Reasonings)

	low := rows[1]
	assert.Nil(t, low.PublicationID)
	assert.Nil(t, low.TaskText)
	assert.Nil(t, low.SimilarityScore)
	assert.Nil(t, low.Reasonings)
	assert.Equal(t, "INCON-P1", low.Tag)
}

// A raw tag without the CONF- prefix passes through unchanged.
func TestFlattenPerItem_RawTag(t *testing.T) {
	doc := decodeDoc(t, `{
		"high_order_text": [{"paragraph_ID": "P1", "low_order_texts": [
			{"paragraph_ID": "L1", "publication_ID": "PubA", "tag": "STYLE-3"}
		]}]
	}`)

	rows, err := Flatten(doc, PolicyPerItem)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "STYLE-3", rows[1].Tag)
	assert.Equal(t, "Low-Order Text", rows[1].TextType)
}
