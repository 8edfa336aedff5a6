package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
)

func TestFormatVisitorTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	rows := []pretty.VisitorRow{
		{Name: "banner", Enabled: false, Description: "Inserts a banner line."},
		{Name: "todo-notes", Enabled: true, Description: "Reports work markers such as TODO or FIXME in text."},
	}

	got := styles.FormatVisitorTable(rows, 49)
	want := "" +
		"NAME        ENABLED  DESCRIPTION\n" +
		"banner      no       Inserts a banner line.\n" +
		"todo-notes  yes      Reports work markers such as\n" +
		"                     TODO or FIXME in text.\n"
	assert.Equal(t, want, got)
}
