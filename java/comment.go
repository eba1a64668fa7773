package java

import "strings"

// Javadoc returns a documentation comment. Lines may contain placeholders (see Raw).
func Javadoc(lines ...string) Generator { //nolint:ireturn
	return framedComment("/**", " *", " */", lines)
}

// BlockComment returns a "/* ... */" comment.
func BlockComment(lines ...string) Generator { //nolint:ireturn
	return framedComment("/*", " *", " */", lines)
}

// LineComment returns one "//" comment per line.
func LineComment(lines ...string) Generator { //nolint:ireturn
	return GeneratorFunc(func(b *Builder) error {
		for _, line := range commentLines(lines) {
			b.Append("//")

			if line != "" {
				b.Space()
				expand(b, line)
			}

			b.NL()
		}

		return nil
	})
}

func framedComment(open, prefix, closing string, lines []string) Generator { //nolint:ireturn
	return GeneratorFunc(func(b *Builder) error {
		b.Append(open).NL()

		for _, line := range commentLines(lines) {
			b.Append(prefix)

			if line != "" {
				b.Space()
				expand(b, line)
			}

			b.NL()
		}

		b.Append(closing).NL()

		return nil
	})
}

func commentLines(lines []string) []string {
	var out []string

	for _, l := range lines {
		for _, s := range splitLines(l) {
			out = append(out, strings.TrimRight(s, " \t"))
		}
	}

	return out
}
