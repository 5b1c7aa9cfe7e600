package segment

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Version is an API version taken from a GL_VERSION_M_N guard.
type Version struct {
	Major int
	Minor int
}

// Code returns the version as a two digit number, 4.5 -> 45.
func (v Version) Code() int {
	return 10*v.Major + v.Minor
}

// Less reports whether v precedes o.
func (v Version) Less(o Version) bool {
	return v.Code() < o.Code()
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion parses "M.N" (or "M_N") into a Version. Both parts must be single digits,
// matching what a version guard can carry.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	major, minor, ok := strings.Cut(strings.ReplaceAll(s, "_", "."), ".")
	if !ok {
		return Version{}, fmt.Errorf("invalid version %q: want MAJOR.MINOR", s)
	}

	m, err := strconv.Atoi(major)
	if err != nil || m < 1 || m > 9 {
		return Version{}, fmt.Errorf("invalid major version in %q", s)
	}
	n, err := strconv.Atoi(minor)
	if err != nil || n < 0 || n > 9 {
		return Version{}, fmt.Errorf("invalid minor version in %q", s)
	}

	return Version{Major: m, Minor: n}, nil
}

// Block holds the raw declaration lines introduced by one API version.
type Block struct {
	Version   Version
	Defines   []string
	Functions []string
}

var (
	guardRe    = regexp.MustCompile(`(?s)#ifndef GL_VERSION_(\d)_(\d)\n(.*?)\n#endif /\* GL_VERSION_\d_\d \*/`)
	versionRe  = regexp.MustCompile(`^#define GL_VERSION_\d_\d`)
	defineRe   = regexp.MustCompile(`^#define \w+ +\w+`)
	functionRe = regexp.MustCompile(`^GLAPI`)
)

// Split cuts src into version blocks and drops every block whose version is at or
// above ceiling. Blocks come back in ascending version order; lines that are neither
// a define nor a GLAPI declaration are skipped. No guards at all yields an empty slice.
func Split(src string, ceiling Version) []Block {
	src = strings.ReplaceAll(src, "\r\n", "\n")

	var blocks []Block
	for _, m := range guardRe.FindAllStringSubmatch(src, -1) {
		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])
		v := Version{Major: major, Minor: minor}
		if v.Code() >= ceiling.Code() {
			continue
		}

		b := Block{Version: v}
		for _, line := range strings.Split(m[3], "\n") {
			switch {
			case versionRe.MatchString(line):
			case defineRe.MatchString(line):
				b.Defines = append(b.Defines, line)
			case functionRe.MatchString(line):
				b.Functions = append(b.Functions, line)
			}
		}
		blocks = append(blocks, b)
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Version.Less(blocks[j].Version)
	})

	return blocks
}
