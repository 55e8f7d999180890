package changelog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_HistoryContainer(t *testing.T) {
	page := `<html><body>
		<div class="detailBox" id="updateHistoryContent">A<br>B</div>
	</body></html>`

	notes, ok := Extract(page)
	require.True(t, ok)
	assert.Equal(t, "A\nB", notes)
}

func TestExtract_HistoryContainerNested(t *testing.T) {
	page := `<div class="detailBox" id="updateHistoryContent">
		<div class="changelog headline">Update: 1.2<br/>   Fixed &amp; improved &lt;stuff&gt;</div>
		<p>Don't&nbsp;panic</p>
	</div>`

	notes, ok := Extract(page)
	require.True(t, ok)
	assert.Equal(t, "Update: 1.2\nFixed & improved <stuff>\nDon't panic", notes)
}

func TestExtract_HistoryContainerPreferredOverUpdates(t *testing.T) {
	page := `<p>Update: elsewhere</p><div id="updateHistoryContent">history</div>`

	notes, ok := Extract(page)
	require.True(t, ok)
	assert.Equal(t, "history", notes)
}

func TestExtract_UpdateSegments(t *testing.T) {
	page := `<html><body><p>Update: fixed A</p><p>update: added <b>B</b></p></body></html>`

	notes, ok := Extract(page)
	require.True(t, ok)
	assert.Equal(t, "Update: fixed A\nupdate: added B", notes)
}

func TestExtract_NoNotes(t *testing.T) {
	_, ok := Extract(`<html><body><p>nothing here</p></body></html>`)
	assert.False(t, ok)

	_, ok = Extract(`<div id="updateHistoryContent">  <br>  </div>`)
	assert.False(t, ok)

	_, ok = Extract("")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\nb\nc", Normalize("<b>a</b><BR>  b<br />\t c"))
	assert.Equal(t, "x & y", Normalize("  x&nbsp;&amp;&nbsp;y  "))
	assert.Equal(t, "1 < 2 > 0", Normalize("1 &lt; 2 &gt; 0"))
}

type fakePages struct {
	pages map[string]string
	err   error
}

func (f *fakePages) FetchItemPage(ctx context.Context, itemID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.pages[itemID], nil
}

func TestFetcher_FetchChangeNotes(t *testing.T) {
	f := NewFetcher(&fakePages{pages: map[string]string{
		"1": `<div id="updateHistoryContent">first<br>second</div>`,
		"2": `<p>plain page</p>`,
	}})

	notes, ok := f.FetchChangeNotes(context.Background(), "1")
	require.True(t, ok)
	assert.Equal(t, "first\nsecond", notes)

	_, ok = f.FetchChangeNotes(context.Background(), "2")
	assert.False(t, ok)
}

func TestFetcher_FetchErrorYieldsNothing(t *testing.T) {
	f := NewFetcher(&fakePages{err: errors.New("connection reset")})

	notes, ok := f.FetchChangeNotes(context.Background(), "1")
	assert.False(t, ok)
	assert.Empty(t, notes)
}
