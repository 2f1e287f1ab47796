package flatten

// Row is one flattened output record. Each field is independently
// nullable: nil means the cell is absent, which the per-item policy uses
// for missing fields and for CONF-suppressed rows. The per-high-order
// policy fills absent fields with empty strings instead.
type Row struct {
	TextType        any `json:"textType"`
	ParagraphID     any `json:"paragraphID"`
	PublicationID   any `json:"publicationID"`
	TaskText        any `json:"taskText"`
	Tag             any `json:"tag"`
	SimilarityScore any `json:"similarityScore"`
	Reasonings      any `json:"reasonings"`
}

// Headers lists the seven column names in output order.
func Headers() []string {
	return []string{
		"Text Type",
		"Paragraph ID",
		"Publication ID",
		"Task Text",
		"Tag",
		"Similarity Score",
		"Reasonings",
	}
}

// Cells returns the row's values in Headers order.
func (r Row) Cells() []any {
	return []any{
		r.TextType,
		r.ParagraphID,
		r.PublicationID,
		r.TaskText,
		r.Tag,
		r.SimilarityScore,
		r.Reasonings,
	}
}
