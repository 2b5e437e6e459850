package glob

// Glob is a compiled path pattern: a flat op vector plus the literal bytes
// its Slice and range ops index into.
type Glob struct {
	bytes []byte
	ops   []op
}

// New compiles pattern into a Glob.
func New(pattern string) (*Glob, error) {
	g := &Glob{}
	if err := g.Compile(pattern); err != nil {
		return nil, err
	}
	return g, nil
}

// Compile recompiles g in place, discarding whatever it held before.
func (g *Glob) Compile(pattern string) error {
	g.bytes = g.bytes[:0]
	g.ops = g.ops[:0]

	p := []byte(pattern)
	n, err := g.compileRecursive(p)
	if err != nil || n != len(p) {
		g.bytes = nil
		g.ops = nil
		return ErrInvalidGlob
	}
	return nil
}

func peekByte(pattern []byte, index int) (byte, bool) {
	if index < len(pattern) {
		return pattern[index], true
	}
	return 0, false
}

func nextByte(pattern []byte, index *int) (byte, bool) {
	if *index < len(pattern) {
		b := pattern[*index]
		*index++
		return b, true
	}
	return 0, false
}

// compileRecursive compiles as much of pattern as forms one sequence (a
// top-level pattern, or one alternative inside a "{...}" group) and
// returns how many bytes it consumed. A "}" or "," not opened by this call
// ends the sequence without being consumed further.
func (g *Glob) compileRecursive(pattern []byte) (int, error) {
	startOpsIndex := len(g.ops)
	index := 0

	for {
		b, ok := nextByte(pattern, &index)
		if !ok {
			break
		}
		switch b {
		case '?':
			if last := len(g.ops) - 1; last >= startOpsIndex && g.ops[last].tag == opSkip {
				g.ops[last].a++
			} else {
				g.ops = append(g.ops, op{tag: opSkip, a: 1})
			}

		case '*':
			if nb, ok := peekByte(pattern, index); ok && nb == '*' {
				if n := len(g.ops); n > 0 && g.ops[n-1].tag != opSeparator {
					return 0, ErrInvalidGlob
				}
				index++
				switch nb2, ok := peekByte(pattern, index); {
				case !ok:
					g.ops = append(g.ops, op{tag: opManyComponents})
				case nb2 == '/':
					index++
					g.ops = append(g.ops, op{tag: opManyComponents})
				default:
					return 0, ErrInvalidGlob
				}
			} else {
				g.ops = append(g.ops, op{tag: opMany})
			}

		case '[':
			inverse := false
			if nb, ok := peekByte(pattern, index); ok && nb == '!' {
				index++
				inverse = true
			}
			start := len(g.bytes)
			for {
				lo, ok := nextByte(pattern, &index)
				if !ok {
					return 0, ErrInvalidGlob
				}
				if lo == ']' {
					break
				}
				hi := lo
				if nb, ok := peekByte(pattern, index); ok && nb == '-' {
					index++
					e, ok := nextByte(pattern, &index)
					if !ok || e == ']' {
						return 0, ErrInvalidGlob
					}
					if e < lo {
						return 0, ErrInvalidGlob
					}
					hi = e
				}
				g.bytes = append(g.bytes, lo, hi)
			}
			count := (len(g.bytes) - start) / 2
			if inverse {
				g.ops = append(g.ops, op{tag: opExceptWithinRanges, a: uint16(start), b: uint16(count)})
			} else {
				g.ops = append(g.ops, op{tag: opAnyWithinRanges, a: uint16(start), b: uint16(count)})
			}

		case ']':
			return 0, ErrInvalidGlob

		case '{':
			fixIndex := len(g.ops)
			g.ops = append(g.ops, op{tag: opSubPatternGroup})

			for {
				innerFixIndex := len(g.ops)
				g.ops = append(g.ops, op{tag: opSubPattern})

				n, err := g.compileRecursive(pattern[index:])
				if err != nil {
					return 0, err
				}
				index += n

				opsCount := len(g.ops)
				g.ops[innerFixIndex].a = uint16(opsCount - innerFixIndex - 1)

				nb, ok := nextByte(pattern, &index)
				if !ok {
					return 0, ErrInvalidGlob
				}
				if nb == '}' {
					break
				}
				if nb != ',' {
					return 0, ErrInvalidGlob
				}
			}

			opsCount := len(g.ops)
			g.ops[fixIndex].a = uint16(opsCount - fixIndex - 1)
			startOpsIndex = len(g.ops)

		case '}', ',':
			index--
			return index, nil

		case '/':
			g.ops = append(g.ops, op{tag: opSeparator})

		default:
			if last := len(g.ops) - 1; last >= startOpsIndex && g.ops[last].tag == opSlice && int(g.ops[last].b) == len(g.bytes) {
				g.bytes = append(g.bytes, b)
				g.ops[last].b++
			} else {
				from := len(g.bytes)
				g.bytes = append(g.bytes, b)
				g.ops = append(g.ops, op{tag: opSlice, a: uint16(from), b: uint16(from + 1)})
			}
		}
	}

	return index, nil
}
