package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDateRange(t *testing.T) {
	tests := []struct {
		name       string
		from       time.Time
		to         time.Time
		wantSince  time.Time
		wantBefore time.Time
	}{
		{
			name:       "open range",
			from:       day(2025, time.March, 1),
			to:         day(2025, time.March, 10),
			wantSince:  day(2025, time.March, 1),
			wantBefore: day(2025, time.March, 10),
		},
		{
			name:       "equal dates give a single day window",
			from:       day(2025, time.March, 1),
			to:         day(2025, time.March, 1),
			wantSince:  day(2025, time.March, 1),
			wantBefore: day(2025, time.March, 2),
		},
		{
			name:       "missing to date gives a single day window",
			from:       day(2025, time.March, 1),
			wantSince:  day(2025, time.March, 1),
			wantBefore: day(2025, time.March, 2),
		},
		{
			name:       "inverted range is forced to the day after from",
			from:       day(2025, time.March, 10),
			to:         day(2025, time.March, 1),
			wantSince:  day(2025, time.March, 10),
			wantBefore: day(2025, time.March, 11),
		},
		{
			name:       "time of day is dropped",
			from:       time.Date(2025, time.March, 1, 14, 30, 0, 0, time.UTC),
			to:         time.Date(2025, time.March, 2, 1, 0, 0, 0, time.UTC),
			wantSince:  day(2025, time.March, 1),
			wantBefore: day(2025, time.March, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			since, before := BuildDateRange(tt.from, tt.to)
			assert.Equal(t, tt.wantSince, since)
			assert.Equal(t, tt.wantBefore, before)
		})
	}
}

func TestCleanEmailBodyStripsHTML(t *testing.T) {
	body := `<html><head><style>p { color: red; }</style></head>` +
		`<body><p>Hello team,</p><p>Meeting at 10am.</p>` +
		`<script>alert("x")</script></body></html>`

	got := CleanEmailBody(body)

	assert.Contains(t, got, "Hello team,")
	assert.Contains(t, got, "Meeting at 10am.")
	assert.NotContains(t, got, "color: red")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "<p>")
}

func TestCleanEmailBodyRemovesURLs(t *testing.T) {
	got := CleanEmailBody("Check the doc at https://example.com/doc?id=1 before Friday.")

	assert.NotContains(t, got, "https://example.com")
	assert.Contains(t, got, "before Friday.")
}

func TestCleanEmailBodyCutsFooter(t *testing.T) {
	body := "Please review the attached file.\n\n" +
		"Manage notifications\nUnsubscribe here\nCopyright 2025"

	got := CleanEmailBody(body)

	assert.Equal(t, "Please review the attached file.", got)
}

func TestCleanEmailBodyCollapsesBlankLines(t *testing.T) {
	got := CleanEmailBody("line one\n\n\n\n\nline two")

	assert.Equal(t, "line one\n\nline two", got)
}

func TestImapAddrDefaultPort(t *testing.T) {
	assert.Equal(t, "imap.example.com:993", imapAddr("imap.example.com"))
	assert.Equal(t, "imap.example.com:143", imapAddr("imap.example.com:143"))
}
