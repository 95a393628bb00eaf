package schedule

import (
	"bufio"
	"io"
)

// Print writes p under the "Classes:" and "Assignments:" headings, one line
// per entry.
func Print(w io.Writer, p Projection) error {
	bw := bufio.NewWriter(w)
	section := func(title string, lines []RenderedLine) {
		bw.WriteString(title)
		bw.WriteByte('\n')
		for _, l := range lines {
			bw.WriteString(l.Text)
			bw.WriteByte('\n')
		}
	}
	section("Classes:", p.Classes)
	section("Assignments:", p.Assignments)
	return bw.Flush()
}
