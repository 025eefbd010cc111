package ignore

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
)

const (
	anyRune         = '*'
	singleRune      = '?'
	setOpen         = '['
	setClose        = ']'
	setNegation     = '!'
	setRangeMarker  = '-'
	escapeRune      = '\\'
	alternationOpen = '{'
	alternationNext = ','
	alternationEnd  = '}'

	// maximumExpandedRunes bounds how far a negated set with ranges is
	// expanded into a gobwas rune list.
	maximumExpandedRunes = 4096
)

// globSpecialRunes must be escaped to be taken literally by gobwas/glob.
const globSpecialRunes = "*?[]{},\\!-^"

type atomKind int

const (
	atomLiteral atomKind = iota
	atomAnyRune
	atomAnyRun
	atomSet
)

// runeRange is an inclusive range of runes inside a character set.
type runeRange struct {
	low  rune
	high rune
}

// runeSet is the content of a "[...]" set.
type runeSet struct {
	negated bool
	members []rune
	ranges  []runeRange
}

func (set runeSet) contains(value rune) bool {
	found := false
	for _, member := range set.members {
		if member == value {
			found = true
			break
		}
	}
	for _, memberRange := range set.ranges {
		if found {
			break
		}
		found = memberRange.low <= value && value <= memberRange.high
	}
	return found != set.negated
}

func (set runeSet) isEmpty() bool {
	return len(set.members) == 0 && len(set.ranges) == 0
}

// patternAtom matches one rune, or any run of runes for atomAnyRun.
type patternAtom struct {
	kind    atomKind
	literal rune
	set     runeSet
}

func (atom patternAtom) matches(value rune) bool {
	switch atom.kind {
	case atomLiteral:
		return atom.literal == value
	case atomSet:
		return atom.set.contains(value)
	default:
		return true
	}
}

// neverMatch stands in for a pattern containing an empty character set.
type neverMatch struct{}

func (neverMatch) Match(string) bool { return false }

func (neverMatch) String() string { return "<never>" }

// boundedGlob rejects names shorter than the pattern needs before delegating.
// gobwas/glob's prefix-suffix matcher lets the two ends overlap, so "a*a"
// would otherwise match "a".
type boundedGlob struct {
	pattern      glob.Glob
	minimumRunes int
}

func (bounded boundedGlob) Match(name string) bool {
	return utf8.RuneCountInString(name) >= bounded.minimumRunes && bounded.pattern.Match(name)
}

// atomGlob matches a parsed pattern directly. It serves patterns whose sets
// gobwas/glob syntax cannot express.
type atomGlob struct {
	atoms []patternAtom
}

func (matcher atomGlob) Match(name string) bool {
	nameRunes := []rune(name)
	atomIndex, runeIndex := 0, 0
	starAtom, starRune := -1, 0
	for runeIndex < len(nameRunes) {
		if atomIndex < len(matcher.atoms) {
			atom := matcher.atoms[atomIndex]
			if atom.kind == atomAnyRun {
				starAtom, starRune = atomIndex, runeIndex
				atomIndex++
				continue
			}
			if atom.matches(nameRunes[runeIndex]) {
				atomIndex++
				runeIndex++
				continue
			}
		}
		if starAtom < 0 {
			return false
		}
		starRune++
		runeIndex = starRune
		atomIndex = starAtom + 1
	}
	for atomIndex < len(matcher.atoms) && matcher.atoms[atomIndex].kind == atomAnyRun {
		atomIndex++
	}
	return atomIndex == len(matcher.atoms)
}

// compileShellPattern compiles a shell-glob pattern. Only "*", "?" and "[...]"
// are special, and "*" matches across "/".
func compileShellPattern(pattern string) (glob.Glob, error) {
	atoms := parseShellPattern(pattern)
	minimumRunes := 0
	for _, atom := range atoms {
		if atom.kind == atomSet && !atom.set.negated && atom.set.isEmpty() {
			return neverMatch{}, nil
		}
		if atom.kind != atomAnyRun {
			minimumRunes++
		}
	}

	translated, expressible := renderGlob(atoms)
	if !expressible {
		return atomGlob{atoms: atoms}, nil
	}
	compiled, compileError := glob.Compile(translated)
	if compileError != nil {
		return nil, fmt.Errorf("%w in %q", compileError, pattern)
	}
	return boundedGlob{pattern: compiled, minimumRunes: minimumRunes}, nil
}

// parseShellPattern splits pattern into atoms. Consecutive stars collapse into
// one, and an unterminated "[" is a literal.
func parseShellPattern(pattern string) []patternAtom {
	patternRunes := []rune(pattern)
	var atoms []patternAtom
	for index := 0; index < len(patternRunes); index++ {
		currentRune := patternRunes[index]
		switch currentRune {
		case anyRune:
			if len(atoms) == 0 || atoms[len(atoms)-1].kind != atomAnyRun {
				atoms = append(atoms, patternAtom{kind: atomAnyRun})
			}
		case singleRune:
			atoms = append(atoms, patternAtom{kind: atomAnyRune})
		case setOpen:
			closeIndex := findSetClose(patternRunes, index+1)
			if closeIndex < 0 {
				atoms = append(atoms, patternAtom{kind: atomLiteral, literal: currentRune})
				continue
			}
			set := parseSet(patternRunes[index+1 : closeIndex])
			if set.negated && set.isEmpty() {
				atoms = append(atoms, patternAtom{kind: atomAnyRune})
			} else {
				atoms = append(atoms, patternAtom{kind: atomSet, set: set})
			}
			index = closeIndex
		default:
			atoms = append(atoms, patternAtom{kind: atomLiteral, literal: currentRune})
		}
	}
	return atoms
}

// findSetClose returns the index of the "]" closing a set whose content starts
// at start, or -1 when the set is unterminated. A "]" directly after "[" or
// "[!" belongs to the set.
func findSetClose(patternRunes []rune, start int) int {
	index := start
	if index < len(patternRunes) && patternRunes[index] == setNegation {
		index++
	}
	if index < len(patternRunes) && patternRunes[index] == setClose {
		index++
	}
	for index < len(patternRunes) && patternRunes[index] != setClose {
		index++
	}
	if index >= len(patternRunes) {
		return -1
	}
	return index
}

// parseSet reads set content. "a-z" is a range, a "-" at either end is
// literal, and reversed ranges are dropped.
func parseSet(content []rune) runeSet {
	var set runeSet
	if len(content) > 0 && content[0] == setNegation {
		set.negated = true
		content = content[1:]
	}
	for index := 0; index < len(content); index++ {
		if index+2 < len(content) && content[index+1] == setRangeMarker {
			low, high := content[index], content[index+2]
			switch {
			case low == high:
				set.members = append(set.members, low)
			case low < high:
				set.ranges = append(set.ranges, runeRange{low: low, high: high})
			}
			index += 2
			continue
		}
		set.members = append(set.members, content[index])
	}
	set.members = uniqueRunes(set.members)
	return set
}

// renderGlob writes atoms in gobwas/glob syntax. It reports false when a
// negated set is too wide to list rune by rune.
func renderGlob(atoms []patternAtom) (string, bool) {
	var builder strings.Builder
	for _, atom := range atoms {
		switch atom.kind {
		case atomAnyRun:
			builder.WriteRune(anyRune)
		case atomAnyRune:
			builder.WriteRune(singleRune)
		case atomLiteral:
			writeLiteral(&builder, atom.literal)
		case atomSet:
			var rendered string
			var expressible bool
			if atom.set.negated {
				rendered, expressible = renderNegatedSet(atom.set)
			} else {
				rendered, expressible = renderSet(atom.set), true
			}
			if !expressible {
				return "", false
			}
			builder.WriteString(rendered)
		}
	}
	return builder.String(), true
}

// renderSet renders a non-negated set as one gobwas term, or as an
// alternation of a rune list and one term per range.
func renderSet(set runeSet) string {
	members := set.members
	var terms []string
	for _, memberRange := range set.ranges {
		if memberRange.low == setNegation {
			// "[!-x]" would read as a negation.
			members = uniqueRunes(append(append([]rune(nil), members...), setNegation))
			memberRange.low++
			if memberRange.low == memberRange.high {
				members = uniqueRunes(append(members, memberRange.low))
				continue
			}
		}
		terms = append(terms, fmt.Sprintf("[%c-%c]", memberRange.low, memberRange.high))
	}
	if len(members) > 0 {
		terms = append([]string{renderRuneList(members, false)}, terms...)
	}
	if len(terms) == 1 {
		return terms[0]
	}
	var builder strings.Builder
	builder.WriteRune(alternationOpen)
	for index, term := range terms {
		if index > 0 {
			builder.WriteRune(alternationNext)
		}
		builder.WriteString(term)
	}
	builder.WriteRune(alternationEnd)
	return builder.String()
}

// renderNegatedSet renders "[!...]". gobwas/glob accepts either one range or a
// rune list after "!", so ranges mixed with other members are expanded.
func renderNegatedSet(set runeSet) (string, bool) {
	if len(set.members) == 0 && len(set.ranges) == 1 {
		return fmt.Sprintf("[!%c-%c]", set.ranges[0].low, set.ranges[0].high), true
	}
	members := append([]rune(nil), set.members...)
	for _, memberRange := range set.ranges {
		if int(memberRange.high-memberRange.low)+len(members) >= maximumExpandedRunes {
			return "", false
		}
		for member := memberRange.low; member <= memberRange.high; member++ {
			members = append(members, member)
		}
	}
	return renderRuneList(uniqueRunes(members), true), true
}

// renderRuneList renders members as a gobwas set, or as a plain literal for a
// single non-negated rune.
func renderRuneList(members []rune, negated bool) string {
	var builder strings.Builder
	switch {
	case len(members) == 1 && negated:
		fmt.Fprintf(&builder, "[!%c-%c]", members[0], members[0])
	case len(members) == 1:
		writeLiteral(&builder, members[0])
	default:
		builder.WriteRune(setOpen)
		if negated {
			builder.WriteRune(setNegation)
		}
		for _, member := range members {
			writeLiteral(&builder, member)
		}
		builder.WriteRune(setClose)
	}
	return builder.String()
}

// uniqueRunes sorts and deduplicates members, moving "-" to the end so it
// never opens a set where it would read as a range marker.
func uniqueRunes(members []rune) []rune {
	sort.Slice(members, func(left, right int) bool {
		if members[left] == setRangeMarker || members[right] == setRangeMarker {
			return members[right] == setRangeMarker && members[left] != setRangeMarker
		}
		return members[left] < members[right]
	})
	result := members[:0]
	for index, member := range members {
		if index > 0 && member == members[index-1] {
			continue
		}
		result = append(result, member)
	}
	return result
}

func writeLiteral(builder *strings.Builder, value rune) {
	if strings.ContainsRune(globSpecialRunes, value) {
		builder.WriteRune(escapeRune)
	}
	builder.WriteRune(value)
}
