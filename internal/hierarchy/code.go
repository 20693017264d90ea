// Package hierarchy decodes the factory/section/shift structure hidden in
// department codes and expands a mixed section/department selection into
// concrete department ids.
package hierarchy

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	// Plain is an ordinary office or support department, listed on its own.
	Plain Kind = iota
	// ShiftInstance is one shift of a production section in a matrix factory.
	ShiftInstance
)

func (k Kind) String() string {
	if k == ShiftInstance {
		return "SECTION"
	}
	return "PLAIN"
}

// DeptCode is the decoded form of Department.Code. SectionCode and
// ShiftDigits are only set for ShiftInstance.
type DeptCode struct {
	Kind        Kind
	SectionCode string
	ShiftDigits string
}

// <factory digits><section letters><shift digits>, e.g. 2GT1.
var matrixCodePattern = regexp.MustCompile(`^(\d+)([A-Za-z]+)(\d+)$`)

var digitsPattern = regexp.MustCompile(`\d+`)

// ParseCode classifies a department code. Only departments of matrix
// factories can be ShiftInstance; everything else, including malformed
// codes, degrades to Plain.
func ParseCode(factoryID uint, code string, matrix bool) DeptCode {
	if !matrix {
		return DeptCode{Kind: Plain}
	}
	m := matrixCodePattern.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil || m[1] != strconv.FormatUint(uint64(factoryID), 10) {
		return DeptCode{Kind: Plain}
	}
	return DeptCode{Kind: ShiftInstance, SectionCode: m[2], ShiftDigits: m[3]}
}

// ShiftDigits pulls the shift number out of a kip name ("Kíp 2" -> "2").
// It returns "" when the name carries no digits.
func ShiftDigits(kipName string) string {
	return digitsPattern.FindString(kipName)
}
