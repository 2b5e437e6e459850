package glob

func isPathSeparator(b byte) bool { return b == '/' || b == '\\' }

// continuation is a linked stack of "what to try after this op slice",
// used so a SubPatternGroup can rejoin the sequence that follows it
// without recursion depth tied to alternation count.
type continuation struct {
	ops  []op
	next *continuation
}

// Matches reports whether path satisfies g.
func (g *Glob) Matches(path string) bool {
	return matchesRecursive(g.ops, g.bytes, []byte(path), nil)
}

func matchesRecursive(ops []op, bytes []byte, path []byte, cont *continuation) bool {
opLoop:
	for {
		var o op
		if len(ops) > 0 {
			o = ops[0]
			ops = ops[1:]
		} else {
			if cont == nil {
				return len(path) == 0
			}
			return matchesRecursive(cont.ops, bytes, path, cont.next)
		}

		switch o.tag {
		case opSlice:
			prefix := bytes[o.a:o.b]
			if len(path) < len(prefix) {
				return false
			}
			for i, b := range prefix {
				if path[i] != b {
					return false
				}
			}
			path = path[len(prefix):]

		case opSeparator:
			if len(path) == 0 || !isPathSeparator(path[0]) {
				return false
			}
			path = path[1:]

		case opSkip:
			n := int(o.a)
			if len(path) < n {
				return false
			}
			for _, b := range path[:n] {
				if isPathSeparator(b) {
					return false
				}
			}
			path = path[n:]

		case opMany:
			for {
				if matchesRecursive(ops, bytes, path, cont) {
					return true
				}
				if len(path) == 0 || isPathSeparator(path[0]) {
					return false
				}
				path = path[1:]
			}

		case opManyComponents:
			for {
				if matchesRecursive(ops, bytes, path, cont) {
					return true
				}
				if len(path) == 0 {
					return false
				}
				i := -1
				for k, b := range path {
					if isPathSeparator(b) {
						i = k
						break
					}
				}
				if i < 0 {
					return false
				}
				path = path[i+1:]
			}

		case opAnyWithinRanges:
			if len(path) == 0 {
				return false
			}
			b := path[0]
			path = path[1:]
			ranges := bytes[o.a:]
			for i := 0; i < int(o.b); i++ {
				lo, hi := ranges[2*i], ranges[2*i+1]
				if lo <= b && b <= hi {
					continue opLoop
				}
			}
			return false

		case opExceptWithinRanges:
			if len(path) == 0 {
				return false
			}
			b := path[0]
			path = path[1:]
			ranges := bytes[o.a:]
			for i := 0; i < int(o.b); i++ {
				lo, hi := ranges[2*i], ranges[2*i+1]
				if b < lo || hi < b {
					continue opLoop
				}
			}
			return false

		case opSubPatternGroup:
			jump := ops[o.a:]
			for {
				if len(ops) == 0 || ops[0].tag != opSubPattern {
					return false
				}
				length := int(ops[0].a)
				ops = ops[1:]
				next := &continuation{ops: jump, next: cont}
				if matchesRecursive(ops[:length], bytes, path, next) {
					return true
				}
				ops = ops[length:]
			}

		case opSubPattern:
			panic("glob: unreachable subpattern op")
		}
	}
}
