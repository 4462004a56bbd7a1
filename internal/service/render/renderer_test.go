package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ww2() *core.Event {
	return &core.Event{
		Title:            "Perang Dunia II",
		Description:      "Konflik global.",
		Period:           "1939-1945",
		ImportantFigures: []string{"Winston Churchill", "Franklin D. Roosevelt"},
	}
}

func TestBuild_EventPresenceRules(t *testing.T) {
	doc, err := Build(core.EventMatch(ww2()))
	require.NoError(t, err)

	assert.Equal(t, "event", doc.Kind)
	assert.Equal(t, "Perang Dunia II", doc.Heading)

	var labels []string
	for _, s := range doc.Sections {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"Periode", "Deskripsi", "Tokoh Penting"}, labels)
	assert.NotContains(t, labels, "Penyebab")
	assert.Equal(t, []string{"Winston Churchill", "Franklin D. Roosevelt"}, doc.Sections[2].Items)
	assert.Equal(t, SectionList, doc.Sections[2].Kind)
}

func TestBuild_EventFieldOrder(t *testing.T) {
	doc, err := Build(core.EventMatch(&core.Event{
		Title:            "Revolusi Prancis",
		Description:      "Pergolakan politik.",
		Period:           "1789-1799",
		Keywords:         "bastille",
		Region:           "Eropa",
		ImportantFigures: []string{"Robespierre"},
		LongTermImpact:   "Republik modern",
		Cause:            "Krisis fiskal",
		Effect:           "Runtuhnya monarki",
		References:       []string{"Hobsbawm"},
		Category:         "Revolusi",
	}))
	require.NoError(t, err)

	var labels []string
	for _, s := range doc.Sections {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{
		"Periode", "Kategori", "Wilayah", "Deskripsi", "Penyebab",
		"Akibat/Dampak Langsung", "Dampak Jangka Panjang", "Tokoh Penting",
		"Sumber Referensi", "Kata Kunci",
	}, labels)
}

func TestBuild_DescriptionPlaceholder(t *testing.T) {
	doc, err := Build(core.EventMatch(&core.Event{Title: "Tanpa Deskripsi"}))
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Deskripsi", doc.Sections[0].Label)
	assert.Equal(t, Placeholder, doc.Sections[0].Value)

	doc, err = Build(core.FigureMatch(&core.Figure{Name: "Anonim"}))
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, Placeholder, doc.Sections[0].Value)
}

func TestBuild_Figure(t *testing.T) {
	doc, err := Build(core.FigureMatch(&core.Figure{
		Name:                "Cleopatra",
		Description:         "Ratu terakhir Mesir Ptolemeus.",
		LifePeriod:          "69-30 SM",
		OriginCountry:       "Mesir",
		ExpertiseField:      "Politik",
		Category:            "Penguasa",
		PrimaryContribution: "Aliansi dengan Roma",
		NotableAchievements: []string{"Memerintah 21 tahun", "Menguasai sembilan bahasa"},
		HistoricalInfluence: "Simbol kekuasaan",
		Legacy:              "Ikon budaya",
		References:          []string{"Plutarch"},
		Keywords:            "mesir, ratu",
	}))
	require.NoError(t, err)

	assert.Equal(t, "figure", doc.Kind)
	assert.Equal(t, "👤 Cleopatra", doc.Heading)

	var labels []string
	for _, s := range doc.Sections {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{
		"Periode Hidup", "Negara Asal", "Bidang Keahlian", "Kategori", "Deskripsi",
		"Kontribusi Utama", "Pencapaian Penting", "Pengaruh Sejarah", "Legacy",
		"Sumber Referensi", "Kata Kunci",
	}, labels)
}

func TestBuild_MalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		res  core.MatchResult
	}{
		{"event without record", core.MatchResult{Kind: core.MatchEvent}},
		{"event without title", core.EventMatch(&core.Event{Description: "x"})},
		{"figure without record", core.MatchResult{Kind: core.MatchFigure}},
		{"figure without name", core.FigureMatch(&core.Figure{Description: "x"})},
		{"not found", core.NotFound()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.res)
			assert.ErrorIs(t, err, core.ErrRendering)
		})
	}
}

func TestRenderer_NotFoundIsLiteralInEveryFormat(t *testing.T) {
	for _, name := range []string{FormatHTML, FormatMarkdown, FormatText, FormatJSON, FormatTelegram} {
		t.Run(name, func(t *testing.T) {
			f, err := NewFormatter(name)
			require.NoError(t, err)

			out, err := NewRenderer(f).Render(core.NotFound())
			require.NoError(t, err)
			assert.Equal(t, NotFoundMessage, out)
		})
	}
}

func TestRenderer_Markdown(t *testing.T) {
	out, err := NewRenderer(MarkdownFormatter{}).Render(core.EventMatch(ww2()))
	require.NoError(t, err)

	want := "### Perang Dunia II\n" +
		"\n**📅 Periode:** 1939-1945\n" +
		"\n**📖 Deskripsi:** Konflik global.\n" +
		"\n**👥 Tokoh Penting:**\n\n1. Winston Churchill\n2. Franklin D. Roosevelt\n"
	assert.Equal(t, want, out)
}

func TestRenderer_HTML(t *testing.T) {
	out, err := NewRenderer(HTMLFormatter{}).Render(core.EventMatch(ww2()))
	require.NoError(t, err)

	assert.Contains(t, out, "Perang Dunia II</h3>")
	assert.Contains(t, out, "<li>Winston Churchill</li>")
	assert.Contains(t, out, "<li>Franklin D. Roosevelt</li>")
	assert.Less(t, strings.Index(out, "Winston Churchill"), strings.Index(out, "Franklin D. Roosevelt"))
	assert.NotContains(t, out, "Penyebab")
}

func TestRenderer_HTMLEscapesRecordText(t *testing.T) {
	e := ww2()
	e.Description = "<script>alert(1)</script> **tebal**"

	out, err := NewRenderer(HTMLFormatter{}).Render(core.EventMatch(e))
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<strong>tebal</strong>")
}

func TestRenderer_Text(t *testing.T) {
	out, err := NewRenderer(TextFormatter{}).Render(core.EventMatch(ww2()))
	require.NoError(t, err)
	assert.NotContains(t, out, "<")
	// headings may be restyled by the flattener; compare case-insensitively
	assert.Contains(t, strings.ToLower(out), "perang dunia ii")
	assert.Contains(t, out, "Winston Churchill")
}

func TestRenderer_JSON(t *testing.T) {
	out, err := NewRenderer(JSONFormatter{}).Render(core.EventMatch(ww2()))
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Perang Dunia II", doc.Heading)
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "Tokoh Penting", doc.Sections[2].Label)
}

func TestRenderer_RenderingError(t *testing.T) {
	_, err := NewRenderer(HTMLFormatter{}).Render(core.EventMatch(&core.Event{}))
	var rerr *core.RenderingError
	assert.ErrorAs(t, err, &rerr)
}

func TestNewFormatter_Unknown(t *testing.T) {
	_, err := NewFormatter("pdf")
	assert.Error(t, err)
}

func TestRenderer_HeadingKeepsTitle(t *testing.T) {
	tests := []string{
		"Bahasa C #",
		"Perang {#rahasia}",
		"# Revolusi ##",
	}

	for _, title := range tests {
		t.Run(title, func(t *testing.T) {
			e := ww2()
			e.Title = title

			out, err := NewRenderer(HTMLFormatter{}).Render(core.EventMatch(e))
			require.NoError(t, err)
			assert.Contains(t, out, ">"+title+"</h3>")
			assert.NotContains(t, out, `id="rahasia"`)
		})
	}
}

func TestRenderer_RecordTextCannotAddBlocks(t *testing.T) {
	e := ww2()
	e.Description = "Konflik global\n---\nbagian dua"
	e.Cause = "Krisis\n==="
	e.Effect = "Awal\n***\n___"

	out, err := NewRenderer(HTMLFormatter{}).Render(core.EventMatch(e))
	require.NoError(t, err)

	for _, tag := range []string{"<h1", "<h2", "<hr"} {
		assert.NotContains(t, out, tag)
	}
	assert.Equal(t, 1, strings.Count(out, "<h3"))
	assert.Contains(t, out, "Deskripsi:</strong> Konflik global")
	assert.Contains(t, out, "Penyebab:</strong> Krisis")
	assert.Contains(t, out, "===")
}
