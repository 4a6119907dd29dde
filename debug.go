package sixelcore

import (
	"fmt"
	"sort"
	"strings"
)

// DebugString renders a column-aligned dump of the pool's named image
// references, sorted by name. Each name is padded to the widest name's
// display width (accounting for wide runes via StringWidth) so the id
// column lines up even with CJK names.
// Not used by any parser/builder/pool operation; purely an inspection aid.
func (p *ImagePool) DebugString() string {
	p.mu.Lock()
	type entry struct {
		name string
		id   uint64
		size Size
	}
	entries := make([]entry, 0, len(p.named))
	widest := 0
	for name, ref := range p.named {
		if w := StringWidth(name); w > widest {
			widest = w
		}
		entries = append(entries, entry{name: name, id: ref.img.id, size: ref.img.size})
	}
	p.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	var sb strings.Builder
	for _, e := range entries {
		pad := widest - StringWidth(e.name)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(&sb, "%s%s  id=%d  %dx%d\n", e.name, strings.Repeat(" ", pad), e.id, e.size.W, e.size.H)
	}
	return sb.String()
}
