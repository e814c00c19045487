// Package meminit reads memory images in the $readmemh / $readmemb text
// format.
package meminit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Format selects the digit base of the data words.
type Format string

const (
	Hex Format = "hex"
	Bin Format = "bin"
)

// MaxWords bounds the highest address an image may write.
const MaxWords = 1 << 20

// ParseFormat accepts "hex" or "bin".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Hex, Bin:
		return f, nil
	}
	return "", fmt.Errorf("unknown init format %q (want hex or bin)", s)
}

func (f Format) base() int {
	if f == Bin {
		return 2
	}
	return 16
}

// ReadFile parses the image stored at path.
func ReadFile(path string, f Format) ([]uint64, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open memory init file: %w", err)
	}
	defer fh.Close()

	words, err := Parse(fh, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Parse reads whitespace separated words. `@<hex>` moves the write address,
// `//` and `/* */` are comments and `_` may separate digits. Addresses that
// are skipped over read back as zero.
func Parse(r io.Reader, f Format) ([]uint64, error) {
	var (
		words     []uint64
		addr      int
		inComment bool
		lineNo    int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		var clean strings.Builder
		for i := 0; i < len(line); i++ {
			switch {
			case inComment:
				if strings.HasPrefix(line[i:], "*/") {
					inComment = false
					i++
					clean.WriteByte(' ')
				}
			case strings.HasPrefix(line[i:], "/*"):
				inComment = true
				i++
			case strings.HasPrefix(line[i:], "//"):
				i = len(line)
			default:
				clean.WriteByte(line[i])
			}
		}

		for _, tok := range strings.Fields(clean.String()) {
			if strings.HasPrefix(tok, "@") {
				a, err := strconv.ParseUint(strings.ReplaceAll(tok[1:], "_", ""), 16, 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad address %q", lineNo, tok)
				}
				addr = int(a)
				continue
			}
			v, err := strconv.ParseUint(strings.ReplaceAll(tok, "_", ""), f.base(), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad %s word %q: %w", lineNo, f, tok, unwrapNum(err))
			}
			if addr >= MaxWords {
				return nil, fmt.Errorf("line %d: address %#x is beyond the %d word limit", lineNo, addr, MaxWords)
			}
			for len(words) <= addr {
				words = append(words, 0)
			}
			words[addr] = v
			addr++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if inComment {
		return nil, fmt.Errorf("unterminated /* comment")
	}
	return words, nil
}

func unwrapNum(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
