package mesh

// Handles address arena slots. Each carries a 1-based index (0 means "no
// entity", matching the zero-value-is-none idiom used throughout this
// package) plus a generation tag. A handle whose generation no longer
// matches its slot's current generation refers to a since-reused or
// since-freed slot and resolves to InvalidHandleError rather than aliasing
// whatever now occupies that slot.
//
// Generation tags are not present in the connectivity arena this package
// is grounded on (tri-mesh's IDMap recycles free-list indices with no
// staleness check at all); they are the deletion-safety enrichment this
// module adds on top of that design.

type VertexHandle struct {
	index uint32
	gen   uint32
}

type HalfEdgeHandle struct {
	index uint32
	gen   uint32
}

type FaceHandle struct {
	index uint32
	gen   uint32
}

// IsNil reports whether the handle is the zero-value "no entity" sentinel.
func (h VertexHandle) IsNil() bool   { return h.index == 0 }
func (h HalfEdgeHandle) IsNil() bool { return h.index == 0 }
func (h FaceHandle) IsNil() bool     { return h.index == 0 }

func (h VertexHandle) String() string   { return handleString("V", h.index, h.gen) }
func (h HalfEdgeHandle) String() string { return handleString("H", h.index, h.gen) }
func (h FaceHandle) String() string     { return handleString("F", h.index, h.gen) }

func handleString(prefix string, index, gen uint32) string {
	if index == 0 {
		return prefix + "(nil)"
	}
	return prefix + "#" + itoa(index) + "g" + itoa(gen)
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
