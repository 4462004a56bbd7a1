package render

import (
	"github.com/sandevgo/sejarahbot/internal/core"
)

// NotFoundMessage is the answer for a query that matched nothing.
const NotFoundMessage = "Maaf, topik atau tokoh sejarah tersebut belum tersedia di database. " +
	"Coba tanyakan tentang topik atau tokoh sejarah lain yang tersedia."

// Placeholder stands in for an empty description.
const Placeholder = "Tidak tersedia"

const figureHeadingPrefix = "👤 "

type SectionKind string

const (
	SectionText SectionKind = "text"
	SectionList SectionKind = "list"
)

// Section is one labelled part of an answer.
type Section struct {
	Label string      `json:"label"`
	Emoji string      `json:"emoji,omitempty"`
	Kind  SectionKind `json:"kind"`
	Value string      `json:"value,omitempty"`
	Items []string    `json:"items,omitempty"`
}

// Document is a rendered answer before it is turned into markup.
type Document struct {
	Kind     string    `json:"kind"`
	Heading  string    `json:"heading"`
	Sections []Section `json:"sections"`
}

type presence int

const (
	// optional scalars are shown only when non-empty
	optional presence = iota
	// always shown, with Placeholder when empty
	always
	// list sections are omitted when empty
	list
)

type field[T any] struct {
	emoji    string
	label    string
	presence presence
	value    func(*T) string
	items    func(*T) []string
}

var eventFields = []field[core.Event]{
	{emoji: "📅", label: "Periode", value: func(e *core.Event) string { return e.Period }},
	{emoji: "🏷️", label: "Kategori", value: func(e *core.Event) string { return e.Category }},
	{emoji: "🌍", label: "Wilayah", value: func(e *core.Event) string { return e.Region }},
	{emoji: "📖", label: "Deskripsi", presence: always, value: func(e *core.Event) string { return e.Description }},
	{emoji: "🔍", label: "Penyebab", value: func(e *core.Event) string { return e.Cause }},
	{emoji: "⚡", label: "Akibat/Dampak Langsung", value: func(e *core.Event) string { return e.Effect }},
	{emoji: "🌟", label: "Dampak Jangka Panjang", value: func(e *core.Event) string { return e.LongTermImpact }},
	{emoji: "👥", label: "Tokoh Penting", presence: list, items: func(e *core.Event) []string { return e.ImportantFigures }},
	{emoji: "📚", label: "Sumber Referensi", presence: list, items: func(e *core.Event) []string { return e.References }},
	{emoji: "🔑", label: "Kata Kunci", value: func(e *core.Event) string { return e.Keywords }},
}

var figureFields = []field[core.Figure]{
	{emoji: "📅", label: "Periode Hidup", value: func(f *core.Figure) string { return f.LifePeriod }},
	{emoji: "🌍", label: "Negara Asal", value: func(f *core.Figure) string { return f.OriginCountry }},
	{emoji: "🏷️", label: "Bidang Keahlian", value: func(f *core.Figure) string { return f.ExpertiseField }},
	{emoji: "🎯", label: "Kategori", value: func(f *core.Figure) string { return f.Category }},
	{emoji: "📖", label: "Deskripsi", presence: always, value: func(f *core.Figure) string { return f.Description }},
	{emoji: "🌟", label: "Kontribusi Utama", value: func(f *core.Figure) string { return f.PrimaryContribution }},
	{emoji: "🏆", label: "Pencapaian Penting", presence: list, items: func(f *core.Figure) []string { return f.NotableAchievements }},
	{emoji: "⚡", label: "Pengaruh Sejarah", value: func(f *core.Figure) string { return f.HistoricalInfluence }},
	{emoji: "💫", label: "Legacy", value: func(f *core.Figure) string { return f.Legacy }},
	{emoji: "📚", label: "Sumber Referensi", presence: list, items: func(f *core.Figure) []string { return f.References }},
	{emoji: "🔑", label: "Kata Kunci", value: func(f *core.Figure) string { return f.Keywords }},
}

func sections[T any](record *T, fields []field[T]) []Section {
	var out []Section
	for _, f := range fields {
		switch f.presence {
		case list:
			items := f.items(record)
			if len(items) == 0 {
				continue
			}
			out = append(out, Section{Label: f.label, Emoji: f.emoji, Kind: SectionList, Items: items})
		case always:
			v := f.value(record)
			if v == "" {
				v = Placeholder
			}
			out = append(out, Section{Label: f.label, Emoji: f.emoji, Kind: SectionText, Value: v})
		default:
			v := f.value(record)
			if v == "" {
				continue
			}
			out = append(out, Section{Label: f.label, Emoji: f.emoji, Kind: SectionText, Value: v})
		}
	}
	return out
}

// Build turns a matched record into a Document. NotFound has no document.
func Build(res core.MatchResult) (Document, error) {
	switch res.Kind {
	case core.MatchEvent:
		if res.Event == nil {
			return Document{}, &core.RenderingError{Reason: "event match without record"}
		}
		if res.Event.Title == "" {
			return Document{}, &core.RenderingError{Reason: "event without title"}
		}
		return Document{
			Kind:     res.Kind.String(),
			Heading:  res.Event.Title,
			Sections: sections(res.Event, eventFields),
		}, nil
	case core.MatchFigure:
		if res.Figure == nil {
			return Document{}, &core.RenderingError{Reason: "figure match without record"}
		}
		if res.Figure.Name == "" {
			return Document{}, &core.RenderingError{Reason: "figure without name"}
		}
		return Document{
			Kind:     res.Kind.String(),
			Heading:  figureHeadingPrefix + res.Figure.Name,
			Sections: sections(res.Figure, figureFields),
		}, nil
	default:
		return Document{}, &core.RenderingError{Reason: "no record to render"}
	}
}
